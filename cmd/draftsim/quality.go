package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/okian/chemdraft/internal/draftsim"
)

func newQualityCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quality",
		Short: "Print the server's reference data quality report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := draftsim.NewClient(rf.url, rf.timeout, rf.rps, rf.burst)
			q, err := c.DataQuality(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		},
	}
}
