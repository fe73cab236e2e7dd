package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/dwcj/installer/pkg/admin"
	"github.com/dwcj/installer/pkg/archive"
	"github.com/dwcj/installer/pkg/buildtool"
	"github.com/dwcj/installer/pkg/descriptor"
	"github.com/dwcj/installer/pkg/installlog"
	"github.com/dwcj/installer/pkg/metrics"
	"github.com/dwcj/installer/pkg/utils"
)

// Options are the optional collaborators of an Installer.
type Options struct {
	FileSystem vfs.FileSystem
	HTTPClient *http.Client
	Metrics    metrics.Metrics
	Settings   *Settings
}

// Installer executes the installation pipeline. The pipeline itself is
// not synchronized: concurrent runs must not use the same base name
// below the same deploy root.
type Installer struct {
	fs           vfs.FileSystem
	provider     admin.SessionProvider
	bootstrapper *buildtool.Bootstrapper
	invoker      *buildtool.Invoker
	metrics      metrics.Metrics
	settings     Settings
}

func New(provider admin.SessionProvider, runner buildtool.Runner, opts ...Options) *Installer {
	o := utils.Optional(opts...)

	settings := DefaultSettings()
	if o.Settings != nil {
		settings = o.Settings.Complete()
	}
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), o.FileSystem)
	return &Installer{
		fs:           fs,
		provider:     provider,
		bootstrapper: buildtool.NewBootstrapper(settings.Tool, o.HTTPClient, fs),
		invoker:      buildtool.NewInvoker(runner, settings.Tool, settings.LogPrefix),
		metrics:      utils.OptionalDefaulted(metrics.Metrics(metrics.Noop{}), o.Metrics),
		settings:     settings,
	}
}

func (i *Installer) Settings() Settings {
	return i.settings
}

// Install runs the installation pipeline and returns the installation
// log. On failure the log accumulated so far is returned together with
// the error.
func (i *Installer) Install(ctx context.Context, req Request) (string, error) {
	out := installlog.New()
	err := i.Run(ctx, req, out)
	return out.String(), err
}

// Run executes the installation pipeline writing to the given log.
func (i *Installer) Run(ctx context.Context, req Request, out *installlog.Log) error {
	r := &run{
		Installer: i,
		id:        uuid.New().String(),
		ctx:       ctx,
		req:       req,
		log:       out,
		state:     StateInitial,
	}
	err := r.execute()
	if err != nil {
		i.metrics.IncInstallations(metrics.RESULT_FAILURE)
		log.Error("installation {{run}} of {{archive}} failed in stage {{stage}}", "run", r.id, "archive", req.ArchiveFileName, "stage", failedStage(err), "error", err)
		return err
	}
	i.metrics.IncInstallations(metrics.RESULT_SUCCESS)
	log.Info("installation {{run}} of {{archive}} finished", "run", r.id, "archive", req.ArchiveFileName)
	return nil
}

func failedStage(err error) State {
	var serr *StageError
	if errors.As(err, &serr) {
		return serr.Stage
	}
	return StateInitial
}

// run keeps the state of a single installation.
type run struct {
	*Installer
	id    string
	ctx   context.Context
	req   Request
	log   *installlog.Log
	state State

	base       string
	staging    string
	archive    string
	descriptor string
	config     descriptor.Configuration
}

func (r *run) execute() error {
	if err := r.req.Validate(); err != nil {
		return &StageError{Stage: StateStaged, Err: err}
	}
	r.base, _ = r.req.BaseName()
	r.staging, _ = r.req.StagingDir()

	log.Info("installation {{run}} of {{archive}} into {{dir}}", "run", r.id, "archive", r.req.ArchiveFileName, "dir", r.staging)

	steps := []struct {
		state State
		step  func() error
	}{
		{StateStaged, r.stage},
		{StateDescriptorExtracted, r.extractDescriptor},
		{StateDependenciesResolved, r.resolveDependencies},
		{StateResourcesExtracted, r.extractResources},
		{StateConfigurationRead, r.readConfiguration},
		{StateRegistered, r.register},
	}
	for _, s := range steps {
		if err := r.transition(s.state, s.step); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) transition(s State, step func() error) error {
	start := time.Now()
	err := step()
	result := metrics.RESULT_SUCCESS
	if err != nil {
		result = metrics.RESULT_FAILURE
	}
	r.metrics.ObserveStage(string(s), result, time.Since(start).Seconds())
	if err != nil {
		return &StageError{Stage: s, Err: err}
	}
	log.Debug("installation {{run}} reached {{stage}}", "run", r.id, "stage", s, "previous", r.state)
	r.state = s
	return nil
}

func (r *run) addf(msg string, args ...interface{}) {
	r.log.Add(r.settings.LogPrefix + fmt.Sprintf(msg, args...))
}

// stage creates the staging directory and copies the archive into it.
func (r *run) stage() error {
	if err := r.fs.MkdirAll(r.staging, 0o755); err != nil {
		return err
	}
	r.archive = filepath.Join(r.staging, r.req.ArchiveFileName)
	r.addf("installing %s into %s", r.req.ArchiveFileName, utils.DirPath(r.staging))
	if filepath.Clean(r.req.SourceArchivePath) == r.archive {
		return nil
	}
	return copyFile(r.fs, r.req.SourceArchivePath, r.archive)
}

func (r *run) extractDescriptor() error {
	var err error
	r.descriptor, err = archive.ExtractSingle(r.fs, r.archive, r.settings.Descriptor, r.staging, r.log, r.settings.LogPrefix)
	return err
}

func (r *run) resolveDependencies() error {
	depdir := filepath.Join(r.staging, r.settings.DependencyDir)
	if err := r.fs.RemoveAll(depdir); err != nil {
		return fmt.Errorf("cannot remove outdated dependencies: %w", err)
	}

	dir := r.settings.ToolDir
	if dir == "" {
		dir = r.req.DeployRoot
	}
	if _, err := r.bootstrapper.EnsureAvailable(r.ctx, dir); err != nil {
		return err
	}
	return r.invoker.ResolveDependencies(r.ctx, r.descriptor, dir, r.log)
}

// Dependencies returns the names of resolved dependencies carrying
// program resources.
func (r *run) dependencies() (sets.Set[string], error) {
	deps := sets.New[string]()
	list, err := vfs.ReadDir(r.fs, filepath.Join(r.staging, r.settings.DependencyDir))
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return deps, nil
		}
		return nil, err
	}
	for _, e := range list {
		if !e.IsDir() && strings.Contains(e.Name(), r.settings.DependencyMarker) {
			deps.Insert(e.Name())
		}
	}
	return deps, nil
}

func (r *run) extractResources() error {
	deps, err := r.dependencies()
	if err != nil {
		return &archive.ExtractionError{Archive: filepath.Join(r.staging, r.settings.DependencyDir), Err: err}
	}
	total := 0
	for _, d := range sets.List(deps) {
		r.addf("extracting resources from %s", d)
		n, err := archive.ExtractAllMatching(r.fs, filepath.Join(r.staging, r.settings.DependencyDir, d), r.settings.ResourceSuffix, r.staging, r.log, r.settings.LogPrefix)
		total += n
		if err != nil {
			r.metrics.IncExtractedResources(total)
			return err
		}
	}
	r.metrics.IncExtractedResources(total)
	log.Debug("extracted {{count}} resources from {{deps}} dependencies", "count", total, "deps", deps.Len(), "run", r.id)
	return nil
}

func (r *run) readConfiguration() error {
	var err error
	r.config, err = descriptor.Extract(r.fs, r.descriptor, r.settings.Plugin)
	if err != nil {
		return err
	}
	log.Info("using configuration {{keys}} (digest {{digest}})", "keys", r.config.Keys(), "digest", utils.HashData(r.config), "run", r.id)
	return nil
}

// Classpath returns the classpath entries of the application.
func (r *run) classpath() []string {
	return []string{
		r.settings.DefaultClasspathEntry,
		filepath.Join(r.staging, r.settings.DependencyDir) + "/*",
		r.archive,
	}
}

func (r *run) register() error {
	opts := r.config.Options(r.base, r.settings.Defaults)

	creds := admin.UserCredentials(opts.Username, opts.Password)
	if opts.HasToken {
		creds = admin.TokenCredentials(opts.Token)
	}
	session, err := admin.Open(r.ctx, r.provider, creds)
	if err != nil {
		return err
	}
	err = admin.Register(r.ctx, session, admin.Registration{
		AppName:    opts.PublishName,
		Classpath:  r.classpath(),
		WorkingDir: utils.DirPath(r.staging),
		Debug:      opts.Debug,
		ClassName:  opts.ClassName,
	})
	if err != nil {
		return err
	}
	r.addf("registered application %s with classpath %s", opts.PublishName, admin.ClasspathHandle(opts.PublishName))
	return nil
}

func copyFile(fs vfs.FileSystem, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
