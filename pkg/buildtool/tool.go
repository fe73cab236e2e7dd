package buildtool

import (
	"path/filepath"
)

const (
	DEFAULT_URL          = "https://dlcdn.apache.org/maven/maven-3/3.8.8/binaries/apache-maven-3.8.8-bin.zip"
	DEFAULT_HOME         = "apache-maven-3.8.8"
	DEFAULT_BINARY       = "bin/mvn"
	DEFAULT_BATCH_BINARY = "bin/mvn.cmd"
	DEFAULT_GOAL         = "dependency:copy-dependencies"

	// DOWNLOAD is the name of the temporary download inside the
	// installation directory.
	DOWNLOAD = "mvn.zip"
)

// Tool describes the distribution of the dependency resolution tool.
type Tool struct {
	URL         string `json:"url,omitempty"`
	Home        string `json:"home,omitempty"`
	Binary      string `json:"binary,omitempty"`
	BatchBinary string `json:"batchBinary,omitempty"`
	Goal        string `json:"goal,omitempty"`
}

func DefaultTool() Tool {
	return Tool{
		URL:         DEFAULT_URL,
		Home:        DEFAULT_HOME,
		Binary:      DEFAULT_BINARY,
		BatchBinary: DEFAULT_BATCH_BINARY,
		Goal:        DEFAULT_GOAL,
	}
}

// Complete fills unset fields with the defaults.
func (t Tool) Complete() Tool {
	def := DefaultTool()
	if t.URL == "" {
		t.URL = def.URL
	}
	if t.Home == "" {
		t.Home = def.Home
	}
	if t.Binary == "" {
		t.Binary = def.Binary
	}
	if t.BatchBinary == "" {
		t.BatchBinary = def.BatchBinary
	}
	if t.Goal == "" {
		t.Goal = def.Goal
	}
	return t
}

// HomePath returns the root directory of the distribution below
// installDir.
func (t Tool) HomePath(installDir string) string {
	return filepath.Join(installDir, t.Home)
}

// BinaryPath returns the location of the tool binary below installDir.
func (t Tool) BinaryPath(installDir string) string {
	return filepath.Join(installDir, t.Home, filepath.FromSlash(t.Binary))
}

func (t Tool) BatchBinaryPath(installDir string) string {
	return filepath.Join(installDir, t.Home, filepath.FromSlash(t.BatchBinary))
}
