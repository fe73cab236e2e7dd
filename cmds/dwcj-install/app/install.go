package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dwcj/installer/pkg/installer"
	"github.com/dwcj/installer/pkg/metrics"
)

type Install struct {
	cmd *cobra.Command

	mainopts    *Options
	name        string
	home        string
	deployRoot  string
	address     string
	tool        ToolOptions
	metricsFile string
}

func NewInstall(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <archive> <options>",
		Short: "install an application archive",
		Args:  cobra.ExactArgs(1),
	}

	c := &Install{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context(), args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.name, "name", "N", "", "archive file name (default: file name of archive)")
	flags.StringVarP(&c.home, "home", "H", "", "BBj home directory")
	flags.StringVarP(&c.deployRoot, "deploy-root", "d", "", "deployment root directory")
	flags.StringVarP(&c.address, "admin", "a", "", "administration service address")
	c.tool.AddFlags(flags)
	flags.StringVarP(&c.metricsFile, "metrics-file", "", "", "write Prometheus metrics to file")
	return cmd
}

func (c *Install) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.mainopts.cfg
	req := installer.Request{
		SourceArchivePath: args[0],
		ArchiveFileName:   c.name,
		HostHomeDirectory: value(c.home, cfg.Home),
		DeployRoot:        value(c.deployRoot, cfg.DeployRoot),
	}
	if req.ArchiveFileName == "" {
		req.ArchiveFileName = filepath.Base(req.SourceArchivePath)
	}
	if req.DeployRoot == "" {
		return fmt.Errorf("deploy root required")
	}

	settings := c.mainopts.Settings()
	c.tool.Apply(settings)

	var prom *metrics.Prom
	opts := installer.Options{
		FileSystem: c.mainopts.fs,
		HTTPClient: c.mainopts.env.HTTPClient,
		Settings:   settings,
	}
	if c.metricsFile != "" {
		prom = metrics.NewProm("dwcj")
		opts.Metrics = prom
	}

	inst := installer.New(c.mainopts.Provider(value(c.address, cfg.Admin)), c.mainopts.Runner(), opts)
	out, err := inst.Install(ctx, req)
	fmt.Fprint(c.cmd.OutOrStdout(), out)

	if prom != nil {
		if merr := prom.WriteTextfile(c.metricsFile); merr != nil {
			fmt.Fprintf(c.cmd.ErrOrStderr(), "cannot write metrics %q: %s\n", c.metricsFile, merr)
		}
	}
	return err
}
