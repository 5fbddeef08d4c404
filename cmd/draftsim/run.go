package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/chemdraft/internal/draftsim"
)

func newRunCmd(rf *rootFlags) *cobra.Command {
	cfg := draftsim.NewConfig()
	var noReplay bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run simulated drafts and verify them",
		Example: `  draftsim run
  draftsim run --sessions 50 --workers 8 --teams Red,Blue,Green
  draftsim run --rounds 3 --keep -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = rf.url
			cfg.Timeout = rf.timeout
			cfg.RPS = rf.rps
			cfg.Burst = rf.burst
			cfg.Verbose = rf.verbose
			cfg.Replay = !noReplay

			stats, err := draftsim.Run(cmd.Context(), cfg)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "drafts: %d completed, %d failed; picks: %d; duplicates: %d; took %s\n",
					stats.Completed, stats.Failed, stats.Picks, stats.Duplicates, stats.Duration.Round(time.Millisecond))
			}
			return err
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&cfg.Sessions, "sessions", cfg.Sessions, "number of drafts")
	fl.IntVar(&cfg.Workers, "workers", min(runtime.NumCPU(), 4), "concurrent drafts")
	fl.IntVar(&cfg.Rounds, "rounds", 0, "rounds per draft (0 drafts until the pool is empty)")
	fl.StringSliceVar(&cfg.Teams, "teams", nil, "comma separated teams (default: the server's teams)")
	fl.BoolVar(&noReplay, "no-replay", false, "do not resend picks to check idempotency")
	fl.BoolVar(&cfg.Keep, "keep", false, "keep sessions on the server")
	return cmd
}
