package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/friday/internal/driver"
	"github.com/roach88/friday/internal/metrics"
	"github.com/roach88/friday/internal/terminal"
	"github.com/roach88/friday/internal/widget"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	MetricsAddr string

	// Clock overrides the driver clock (for testing).
	Clock driver.Clock
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the live widget in the terminal",
		Long: `Run the widget against the terminal until interrupted.

On a terminal the screen is redrawn whenever something changes; otherwise
every change is printed as one line.

Examples:
  friday watch
  friday watch --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics at this address")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	log := opts.logger(cmd)

	cfg, err := opts.loadSite(f)
	if err != nil {
		return err
	}
	wc, err := cfg.Widget.Resolve()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWidget, "resolve widget", err)
	}

	rec := metrics.New()
	w, err := widget.New(wc, terminal.New(cmd.OutOrStdout()), widget.WithRecorder(rec))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeWidget, "create widget", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driverOpts := []driver.Option{driver.WithLogger(log), driver.WithObserver(rec)}
	if opts.Clock != nil {
		driverOpts = append(driverOpts, driver.WithClock(opts.Clock))
	}
	h, err := w.Listen(ctx, driverOpts...)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeWidget, "start widget", err)
	}
	defer h.Stop()
	log.Info().Str("run_id", h.ID()).Str("zone", cfg.Widget.Zone).Msg("watching")

	metricsErr := make(chan error, 1)
	if opts.MetricsAddr != "" {
		go func() { metricsErr <- rec.Serve(ctx, opts.MetricsAddr, log) }()
	}

	select {
	case <-h.Done():
	case err := <-metricsErr:
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, "serve metrics", err)
		}
	}

	h.Stop()
	log.Info().Uint64("ticks", h.Ticks()).Msg("stopped")
	return nil
}
