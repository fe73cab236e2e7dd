package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwcj/installer/pkg/buildtool"
)

type Bootstrap struct {
	cmd *cobra.Command

	mainopts *Options
	dir      string
	tool     ToolOptions
}

func NewBootstrap(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap <options>",
		Short: "install the Maven distribution used for dependency resolution",
		Args:  cobra.NoArgs,
	}

	c := &Bootstrap{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context()) }
	flags := cmd.Flags()
	flags.StringVarP(&c.dir, "deploy-root", "d", "", "deployment root directory")
	c.tool.AddFlags(flags)
	return cmd
}

func (c *Bootstrap) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	settings := c.mainopts.Settings()
	c.tool.Apply(settings)
	dir := settings.ToolDir
	if dir == "" {
		dir = value(c.dir, c.mainopts.cfg.DeployRoot)
	}
	if dir == "" {
		return fmt.Errorf("installation directory required")
	}

	b := buildtool.NewBootstrapper(settings.Tool, c.mainopts.env.HTTPClient, c.mainopts.fs)
	bin, err := b.EnsureAvailable(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.cmd.OutOrStdout(), bin)
	return nil
}
