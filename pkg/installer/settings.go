package installer

import (
	"github.com/dwcj/installer/pkg/buildtool"
	"github.com/dwcj/installer/pkg/descriptor"
)

const (
	DEFAULT_DESCRIPTOR        = "pom.xml"
	DEFAULT_DEPENDENCY_DIR    = "target/dependency"
	DEFAULT_DEPENDENCY_MARKER = "dwcj"
	DEFAULT_RESOURCE_SUFFIX   = ".bbj"
	DEFAULT_CLASSPATH_ENTRY   = "(bbj_default)"
)

// Settings are the fixed parameters of the installation workflow.
type Settings struct {
	Tool   buildtool.Tool    `json:"tool,omitempty"`
	Plugin descriptor.Plugin `json:"plugin,omitempty"`
	// ToolDir is the installation directory of the build tool. It
	// defaults to the deploy root of the request.
	ToolDir string `json:"toolDir,omitempty"`

	Descriptor            string              `json:"descriptor,omitempty"`
	DependencyDir         string              `json:"dependencyDir,omitempty"`
	DependencyMarker      string              `json:"dependencyMarker,omitempty"`
	ResourceSuffix        string              `json:"resourceSuffix,omitempty"`
	DefaultClasspathEntry string              `json:"defaultClasspathEntry,omitempty"`
	Defaults              descriptor.Defaults `json:"defaults,omitempty"`
	LogPrefix             string              `json:"logPrefix,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{}.Complete()
}

// Complete fills unset fields with the defaults.
func (s Settings) Complete() Settings {
	s.Tool = s.Tool.Complete()
	s.Plugin = s.Plugin.Complete()
	if s.Descriptor == "" {
		s.Descriptor = DEFAULT_DESCRIPTOR
	}
	if s.DependencyDir == "" {
		s.DependencyDir = DEFAULT_DEPENDENCY_DIR
	}
	if s.DependencyMarker == "" {
		s.DependencyMarker = DEFAULT_DEPENDENCY_MARKER
	}
	if s.ResourceSuffix == "" {
		s.ResourceSuffix = DEFAULT_RESOURCE_SUFFIX
	}
	if s.DefaultClasspathEntry == "" {
		s.DefaultClasspathEntry = DEFAULT_CLASSPATH_ENTRY
	}
	if s.Defaults.Username == "" {
		s.Defaults.Username = descriptor.DEFAULT_USERNAME
	}
	if s.Defaults.Password == "" {
		s.Defaults.Password = descriptor.DEFAULT_PASSWORD
	}
	if s.LogPrefix == "" {
		s.LogPrefix = buildtool.DEFAULT_PREFIX
	}
	return s
}
