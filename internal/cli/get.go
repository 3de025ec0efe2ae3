package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	var defaultValue string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Read the value at a dotted key",
		Long: `Read a single value addressed by a dot-separated path.

Examples:
  docstore get settings.theme
  docstore get appState.minimized --format json
  docstore get settings.fontSize --default 14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			var def any
			if defaultValue != "" {
				def = parseValue(defaultValue)
			}
			v, err := s.Get(args[0], def)
			if err != nil {
				return WrapExitError(ExitFailure, "reading key", err)
			}
			return formatter(rootOpts, cmd).Success(v)
		},
	}

	cmd.Flags().StringVar(&defaultValue, "default", "", "value returned when the key is absent")
	return cmd
}
