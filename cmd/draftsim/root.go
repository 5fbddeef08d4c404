package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/chemdraft/internal/draftsim"
	"github.com/okian/chemdraft/pkg/logger"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	url       string
	timeout   time.Duration
	rps       float64
	burst     int
	logFormat string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "draftsim",
		Short:         "Simulate drafts against a chemdraft server",
		Long:          "draftsim drives complete drafts through the chemdraft HTTP API, taking the top recommendation on every turn, and verifies the resulting sessions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWithWriter(cmd.ErrOrStderr(), f.logFormat); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			if f.verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.url, "url", draftsim.DefaultBaseURL, "base URL of the service")
	pf.DurationVar(&f.timeout, "timeout", draftsim.DefaultTimeout, "HTTP request timeout")
	pf.Float64Var(&f.rps, "rps", draftsim.DefaultRPS, "maximum requests per second")
	pf.IntVar(&f.burst, "burst", draftsim.DefaultBurst, "request burst size")
	pf.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log every pick")

	cmd.AddCommand(newRunCmd(f), newQualityCmd(f))
	return cmd
}
