package cli

import (
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Report store health and sizes",
		Long: `Report file size, modification time, message counts and backup
counts, plus a live health check that performs a throwaway set/get/unset
cycle against the real store file.

Exits nonzero when the health check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.GetStats()
			if err != nil {
				return WrapExitError(ExitFailure, "collecting stats", err)
			}
			if err := formatter(rootOpts, cmd).Success(stats); err != nil {
				return err
			}
			if !stats.Healthy {
				return WrapExitError(ExitFailure, "store failed its health check", nil)
			}
			return nil
		},
	}
}
