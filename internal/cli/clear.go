package cli

import (
	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the store to schema defaults",
		Long: `Replace the entire document with schema defaults through a full
atomic write. The previous content is snapshotted to the backup set first
(subject to the backup throttle). Requires --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return WrapExitError(ExitCommandError, "refusing to clear without --force", nil)
			}
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Clear(); err != nil {
				return WrapExitError(ExitFailure, "clearing store", err)
			}
			return formatter(rootOpts, cmd).Success(nil)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")
	return cmd
}
