package app

import (
	"github.com/spf13/pflag"

	"github.com/dwcj/installer/pkg/installer"
)

// ToolOptions override the build tool settings.
type ToolOptions struct {
	URL string
	Dir string
}

func (o *ToolOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.URL, "tool-url", "", "", "download URL of the Maven distribution")
	fs.StringVarP(&o.Dir, "tool-dir", "", "", "installation directory of the Maven distribution (default: deploy root)")
}

func (o *ToolOptions) Apply(s *installer.Settings) {
	if o.URL != "" {
		s.Tool.URL = o.URL
	}
	if o.Dir != "" {
		s.ToolDir = o.Dir
	}
}
