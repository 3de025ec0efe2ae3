package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write the value at a dotted key",
		Long: `Write a single value addressed by a dot-separated path, creating
intermediate objects as needed. The value argument is decoded as JSON when
possible, so numbers, booleans, objects and arrays survive; anything else is
stored as a string.

The change round-trips through a full atomic write of the document.

Examples:
  docstore set settings.theme light
  docstore set settings.fontSize 14
  docstore set appState.window '{"x": 10, "y": 20}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Set(args[0], parseValue(args[1])); err != nil {
				return WrapExitError(ExitFailure, "writing key", err)
			}
			return formatter(rootOpts, cmd).Success(nil)
		},
	}
	return cmd
}

// parseValue decodes a flag argument as JSON, falling back to the raw
// string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err == nil {
		return v
	}
	return arg
}
