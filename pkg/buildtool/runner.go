package buildtool

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Command describes a subprocess to execute.
type Command struct {
	Path string
	Args []string
	Dir  string
	// Env is added to the environment of the current process.
	Env []string
}

// Runner executes a command and blocks until it is finished. The output
// streams must be completely forwarded before Run returns.
type Runner interface {
	Run(ctx context.Context, cmd Command, stdout, stderr io.Writer) error
}

// ExecRunner runs commands as local processes.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return &ExitError{Command: c.Path, Code: exit.ExitCode()}
		}
		return err
	}
	return nil
}

// RunnerFunc adapts a function to a Runner.
type RunnerFunc func(ctx context.Context, cmd Command, stdout, stderr io.Writer) error

func (f RunnerFunc) Run(ctx context.Context, cmd Command, stdout, stderr io.Writer) error {
	return f(ctx, cmd, stdout, stderr)
}
