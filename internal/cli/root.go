package cli

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/friday/internal/logging"
	"github.com/roach88/friday/internal/site"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // site description; empty means the embedded default
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the friday CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "friday",
		Short: "friday - is it Friday in California?",
		Long: `Answer whether it is Friday in a configured time zone.

Builds a standalone page that keeps the answer, the date and the time up
to date in the browser, or shows the same widget in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				return opts.formatter(cmd).Fail(ExitCommandError, ErrCodeGeneric, msg, nil)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "site description (CUE); defaults to the embedded page")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logging.Setup(cmd.ErrOrStderr(), o.Verbose)
}

// loadSite loads the --config description, reporting failures as command
// errors.
func (o *RootOptions) loadSite(f *OutputFormatter) (*site.Config, error) {
	name := o.Config
	if name == "" {
		name = "embedded default"
	}
	f.VerboseLog("loading site config: %s", name)

	cfg, err := site.LoadConfig(o.Config)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeConfig, "load site config", err)
	}
	return cfg, nil
}
