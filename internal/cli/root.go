package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/printq/internal/journal"
	"github.com/roach88/printq/internal/levels"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Levels  string // path to a CUE levels catalog, empty for the built-in one

	// Sessions overrides the session token generator (for testing).
	// If nil, defaults to journal.UUIDv7Generator.
	Sessions journal.SessionGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the printq CLI.
// Run without a subcommand, it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "printq",
		Short: "printq - priority print queue",
		Long: `A print queue that always prints the most urgent, earliest submitted
document first.

Run without arguments to open the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(opts, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Levels, "levels", "", "CUE file with the accepted priority levels")

	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

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

// configureLogging installs the default slog logger on w.
// Debug with --verbose, warnings only otherwise so the menu stays readable.
func configureLogging(opts *RootOptions, w io.Writer) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// loadCatalog returns the --levels catalog or the built-in default.
func loadCatalog(opts *RootOptions) (*levels.Catalog, error) {
	if opts.Levels == "" {
		return levels.Default()
	}
	return levels.Load(opts.Levels)
}

func sessionGenerator(opts *RootOptions) journal.SessionGenerator {
	if opts.Sessions != nil {
		return opts.Sessions
	}
	return journal.UUIDv7Generator{}
}
