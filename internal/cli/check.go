package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/friday/internal/widget"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	At string // RFC 3339 instant; empty means now

	// Now overrides the current time (for testing).
	Now func() time.Time
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	At     time.Time `json:"at"`
	Answer string    `json:"answer"`
	widget.Snapshot
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts, Now: time.Now}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the answer, date and time once",
		Long: `Evaluate the widget once, without a document, and print what it would show.

Examples:
  friday check
  friday check --at 2026-10-16T09:00:00-07:00
  friday check --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "instant to evaluate (RFC 3339); defaults to now")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	at := opts.Now()
	if opts.At != "" {
		t, err := time.Parse(time.RFC3339Nano, opts.At)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, "parse --at", err)
		}
		at = t
	}

	cfg, err := opts.loadSite(f)
	if err != nil {
		return err
	}
	wc, err := cfg.Widget.Resolve()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWidget, "resolve widget", err)
	}

	snap, err := widget.Evaluate(wc, at)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeWidget, "evaluate", err)
	}

	answer := wc.No.Text
	if snap.Match {
		answer = wc.Yes.Text
	}
	return f.Success(CheckResult{At: at, Answer: answer, Snapshot: snap},
		fmt.Sprintf("%s\n%s\n%s", answer, snap.Date, snap.Time))
}
