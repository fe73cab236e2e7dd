package installer

import (
	"fmt"
)

// State is a state of the installation pipeline. The states are passed
// strictly in the given order.
type State string

const (
	StateInitial              State = "Initial"
	StateStaged               State = "Staged"
	StateDescriptorExtracted  State = "DescriptorExtracted"
	StateDependenciesResolved State = "DependenciesResolved"
	StateResourcesExtracted   State = "ResourcesExtracted"
	StateConfigurationRead    State = "ConfigurationRead"
	StateRegistered           State = "Registered"
)

var States = []State{
	StateStaged,
	StateDescriptorExtracted,
	StateDependenciesResolved,
	StateResourcesExtracted,
	StateConfigurationRead,
	StateRegistered,
}

// StageError is returned if the pipeline cannot reach a state. Stage is
// the state the pipeline failed to enter.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("installation failed in stage %s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
