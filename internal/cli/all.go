package cli

import (
	"github.com/spf13/cobra"
)

// NewAllCommand creates the all command.
func NewAllCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Dump the full document",
		Long: `Print the entire repaired document. Always includes the four
top-level sections: settings, messages, messageHistory, appState.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.GetAll()
			if err != nil {
				return WrapExitError(ExitFailure, "reading document", err)
			}
			return formatter(rootOpts, cmd).Success(doc)
		},
	}
}
