package buildtool

import (
	"fmt"
)

// BootstrapError is reported if the build tool cannot be made available.
type BootstrapError struct {
	Op   string
	Path string
	Err  error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("build tool bootstrap failed: %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// ResolutionError is reported if the dependency resolution could not be
// started or did not succeed.
type ResolutionError struct {
	Descriptor string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("dependency resolution for %q failed: %s", e.Descriptor, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ExitError describes a command terminated with a non-zero exit code.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}
