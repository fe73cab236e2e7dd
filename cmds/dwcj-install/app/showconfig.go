package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/dwcj/installer/pkg/descriptor"
)

type ShowConfig struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
	basename string
}

func NewShowConfig(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <pom.xml> <options>",
		Short: "show the installer configuration of a build descriptor",
		Args:  cobra.ExactArgs(1),
	}

	c := &ShowConfig{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "yaml", "output format (yaml, json or options)")
	flags.StringVarP(&c.basename, "basename", "b", "", "base name used as default publish name")
	return cmd
}

func (c *ShowConfig) Run(args []string) error {
	settings := c.mainopts.Settings()
	cfg, err := descriptor.Extract(c.mainopts.fs, args[0], settings.Plugin)
	if err != nil {
		return err
	}

	var data []byte
	switch c.output {
	case "yaml":
		data, err = yaml.Marshal(cfg.Masked())
	case "json":
		data, err = json.MarshalIndent(cfg.Masked(), "", "  ")
		data = append(data, '\n')
	case "options":
		opts := cfg.Options(c.basename, settings.Defaults)
		if opts.Password != "" {
			opts.Password = "***"
		}
		if opts.Token != "" {
			opts.Token = "***"
		}
		data, err = yaml.Marshal(opts)
	default:
		return fmt.Errorf("invalid output format %q", c.output)
	}
	if err != nil {
		return err
	}
	_, err = c.cmd.OutOrStdout().Write(data)
	return err
}
