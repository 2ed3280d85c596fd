// Package metrics counts widget ticks and notifications on a private
// Prometheus registry.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Recorder implements driver.TickObserver and widget.Recorder.
type Recorder struct {
	registry      *prometheus.Registry
	ticks         prometheus.Counter
	failures      prometheus.Counter
	notifications *prometheus.CounterVec
}

// New registers the friday_* collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "friday_ticks_total",
			Help: "Ticks that completed without error.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "friday_tick_failures_total",
			Help: "Ticks that returned an error or panicked.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "friday_notifications_total",
			Help: "Change notifications dispatched, by slot.",
		}, []string{"slot"}),
	}
	r.registry.MustRegister(r.ticks, r.failures, r.notifications)
	return r
}

func (r *Recorder) TickCompleted() { r.ticks.Inc() }

func (r *Recorder) TickFailed() { r.failures.Inc() }

func (r *Recorder) Notified(slot string) { r.notifications.WithLabelValues(slot).Inc() }

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Router serves the registry at /metrics.
func (r *Recorder) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	return mux
}

// Serve listens on addr until ctx is done, then shuts the server down.
func (r *Recorder) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: r.Router(), ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	log.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
