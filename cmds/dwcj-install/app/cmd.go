package app

import (
	"net/http"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/dwcj/installer/pkg/admin"
	"github.com/dwcj/installer/pkg/admin/httpadmin"
	"github.com/dwcj/installer/pkg/buildtool"
	"github.com/dwcj/installer/pkg/installer"
	"github.com/dwcj/installer/pkg/utils"
)

// Environment provides the external collaborators used by the
// commands. Unset fields use the local system.
type Environment struct {
	FileSystem vfs.FileSystem
	Runner     buildtool.Runner
	HTTPClient *http.Client
	Provider   func(address string, client *http.Client) admin.SessionProvider
}

type Options struct {
	env    Environment
	fs     vfs.FileSystem
	config string
	level  string
	cfg    *Config
}

func (o *Options) Settings() *installer.Settings {
	s := installer.DefaultSettings()
	if o.cfg != nil && o.cfg.Settings != nil {
		s = o.cfg.Settings.Complete()
	}
	return &s
}

func (o *Options) Provider(address string) admin.SessionProvider {
	if o.env.Provider != nil {
		return o.env.Provider(address, o.env.HTTPClient)
	}
	return httpadmin.New(address, o.env.HTTPClient)
}

func (o *Options) Runner() buildtool.Runner {
	if o.env.Runner != nil {
		return o.env.Runner
	}
	return buildtool.ExecRunner{}
}

func New(envs ...Environment) *cobra.Command {
	env := utils.Optional(envs...)
	opts := &Options{
		env:   env,
		fs:    utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), env.FileSystem),
		level: "info",
	}

	maincmd := &cobra.Command{
		Use:   "dwcj-install <options> <cmd> <args>",
		Short: "install DWCJ applications",
		Long: `
This command installs a DWCJ application jar into a BBj server. The jar
is staged below the deploy root, its dependencies are resolved with
Maven, the BBj programs contained in the dependencies are extracted
and the application is registered at the BBj administration service.
`,
		SilenceUsage:     true,
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete()
		},
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.config, "config", "c", "", "configuration file")
	flags.StringVarP(&opts.level, "log-level", "L", opts.level, "log level")

	maincmd.AddCommand(NewInstall(opts))
	maincmd.AddCommand(NewBootstrap(opts))
	maincmd.AddCommand(NewShowConfig(opts))
	return maincmd
}

func (o *Options) Complete() error {
	l, err := logging.ParseLevel(o.level)
	if err != nil {
		return err
	}
	lctx := logging.DefaultContext()
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("dwcj")))

	o.cfg, err = GetConfig(o.fs, o.config)
	return err
}
