// Package metrics exports feed lifecycle counts in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cwerrors "github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/feed"
)

const namespace = "corewatch"

// Recorder implements feed.Stats on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	FramesReceived  prometheus.Counter
	FramesDropped   prometheus.Counter
	TransportErrors prometheus.Counter
	Reloads         prometheus.Counter
	State           prometheus.Gauge
	Cores           prometheus.Gauge
}

var _ feed.Stats = (*Recorder)(nil)

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		FramesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total number of frames decoded and rendered",
		}),
		FramesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Total number of messages dropped as malformed",
		}),
		TransportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Total number of feed transport errors",
		}),
		Reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Total number of session reloads after a close",
		}),
		State: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connection_state",
			Help:      "Feed connection state (0 connecting, 1 open, 2 closed)",
		}),
		Cores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cores",
			Help:      "Number of cores in the latest frame",
		}),
	}
	r.State.Set(float64(feed.StateClosed))
	r.registry.MustRegister(
		r.FramesReceived,
		r.FramesDropped,
		r.TransportErrors,
		r.Reloads,
		r.State,
		r.Cores,
	)
	return r
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) FrameReceived()  { r.FramesReceived.Inc() }
func (r *Recorder) FrameDropped()   { r.FramesDropped.Inc() }
func (r *Recorder) TransportError() { r.TransportErrors.Inc() }
func (r *Recorder) Reloaded()       { r.Reloads.Inc() }

func (r *Recorder) StateChanged(s feed.State) {
	r.State.Set(float64(s))
}

// ObserveCores records the core count of an accepted frame.
func (r *Recorder) ObserveCores(n int) {
	r.Cores.Set(float64(n))
}

// Handler returns the /metrics handler for this recorder.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve listens on addr and serves /metrics until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return cwerrors.WrapWithCode(err, cwerrors.ErrConfig,
			"Can't listen on metrics address "+addr,
			"Pick a free port with --metrics-addr, e.g. :9105")
	}
	return r.serve(ctx, ln)
}

func (r *Recorder) serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return cwerrors.WrapWithCode(err, cwerrors.ErrOutput,
			"Metrics server stopped unexpectedly", "")
	}
	return nil
}
