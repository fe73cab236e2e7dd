package buildtool

import (
	"context"
	"path/filepath"

	"github.com/dwcj/installer/pkg/installlog"
)

const DEFAULT_PREFIX = "dwcj-installer: "

// Invoker runs the dependency resolution for a build descriptor.
type Invoker struct {
	runner Runner
	tool   Tool
	prefix string
}

// NewInvoker creates an invoker for the given tool. Unset tool fields
// use the defaults.
func NewInvoker(runner Runner, tool Tool, prefix ...string) *Invoker {
	if runner == nil {
		runner = ExecRunner{}
	}
	p := DEFAULT_PREFIX
	if len(prefix) > 0 {
		p = prefix[0]
	}
	return &Invoker{runner: runner, tool: tool.Complete(), prefix: p}
}

// ResolveDependencies materializes the dependencies of the descriptor
// into the target/dependency directory next to it using the tool
// installed below installDir. The output of the tool is forwarded line
// by line to the log.
func (i *Invoker) ResolveDependencies(ctx context.Context, descriptor, installDir string, out *installlog.Log) error {
	cmd := Command{
		Path: i.tool.BinaryPath(installDir),
		Args: []string{"-B", "-f", descriptor, i.tool.Goal},
		Dir:  filepath.Dir(descriptor),
		Env:  []string{"MAVEN_HOME=" + i.tool.HomePath(installDir)},
	}

	log.Info("resolving dependencies for {{descriptor}}", "descriptor", descriptor)
	stdout := out.Writer(i.prefix)
	stderr := out.Writer(i.prefix)
	err := i.runner.Run(ctx, cmd, stdout, stderr)
	stdout.Close()
	stderr.Close()
	if err != nil {
		log.Error("dependency resolution failed", "error", err)
		return &ResolutionError{Descriptor: descriptor, Err: err}
	}
	return nil
}
