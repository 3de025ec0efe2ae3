// Package cli implements the docstore command line surface. It is a thin
// collaborator that marshals terminal invocations into the store API; the
// durability guarantees live in internal/store.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/streylix/docstore/internal/config"
	"github.com/streylix/docstore/internal/store"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML config file
	Dir     string // data directory override
	Name    string // store name override
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the docstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "docstore",
		Short: "Inspect and edit the application's document store",
		Long: `docstore reads and writes the single-file JSON document store used by
the application for settings, pending messages, message history and app state.

Every write is atomic (temp file + rename), serialized, snapshotted to a
rotating backup set, and guarded by an advisory lock shared with any other
process using the same store path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "", "data directory (default: per-user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Name, "name", "", "store name (default: store)")

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewAllCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore resolves options from the config file, flag overrides and
// defaults, then opens the store.
func openStore(opts *RootOptions) (*store.Store, error) {
	var storeOpts config.Options
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading config", err)
		}
		storeOpts = loaded
	} else {
		storeOpts = config.Default()
		storeOpts.Dir = ""
	}
	if opts.Dir != "" {
		storeOpts.Dir = opts.Dir
		storeOpts.BackupDir = ""
	}
	if opts.Name != "" {
		storeOpts.Name = opts.Name
	}
	if storeOpts.Dir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "resolving data directory", err)
		}
		storeOpts.Dir = dir
	}

	s, err := store.Open(storeOpts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening store", err)
	}
	return s, nil
}

// defaultDataDir is the per-user data directory used when no --dir or config
// file is given.
func defaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "docstore"), nil
}

// formatter builds the output formatter for a command invocation.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
