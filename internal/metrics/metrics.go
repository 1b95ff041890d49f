// Package metrics exposes render loop counters for Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// ErrEmptyAddress indicates the metrics server has no listen address.
var ErrEmptyAddress = errors.New("metrics address cannot be empty")

// Recorder counts frames, alarms and timer expirations.
type Recorder struct {
	registry      *prometheus.Registry
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	alarms        prometheus.Counter
	timers        prometheus.Counter
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_frames_rendered_total",
			Help: "Render loop invocations.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "clockface_frame_duration_seconds",
			Help:    "Time spent composing and pushing one frame.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.016},
		}),
		alarms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_alarms_fired_total",
			Help: "Alarms that went off.",
		}),
		timers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clockface_timer_expirations_total",
			Help: "Countdowns that reached zero.",
		}),
	}
	recorder.registry.MustRegister(recorder.frames, recorder.frameDuration, recorder.alarms, recorder.timers)
	return recorder
}

func (recorder *Recorder) FrameRendered(duration time.Duration) {
	recorder.frames.Inc()
	recorder.frameDuration.Observe(duration.Seconds())
}

func (recorder *Recorder) AlarmFired() {
	recorder.alarms.Inc()
}

func (recorder *Recorder) TimerExpired() {
	recorder.timers.Inc()
}

// Handler serves the recorder's metrics.
func (recorder *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(recorder.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics until its context is cancelled.
type Server struct {
	server *http.Server
}

// NewServer creates a metrics server listening on address.
func NewServer(address string, recorder *Recorder) (*Server, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	return &Server{server: &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}}, nil
}

// Run serves until ctx is done.
func (server *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.server.Shutdown(shutdownCtx)
	}
}
