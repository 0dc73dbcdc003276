// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the task store.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DurationBuckets are the histogram buckets, in seconds, for request latency.
var DurationBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// unmatchedEndpoint labels requests that did not match any route, keeping
// label cardinality bounded.
const unmatchedEndpoint = "unmatched"

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestsActive  prometheus.Gauge
	TasksTotal      prometheus.Gauge
	TasksCompleted  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. It returns an
// error if any collector is already registered.
func New(reg *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "endpoint", "status_code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: DurationBuckets,
		}, []string{"method", "endpoint"}),
		RequestsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of HTTP requests currently being served.",
		}),
		TasksTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tasks_total",
			Help: "Number of tasks in the store.",
		}),
		TasksCompleted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tasks_completed",
			Help: "Number of completed tasks in the store.",
		}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{
		m.RequestsTotal, m.RequestDuration, m.RequestsActive, m.TasksTotal, m.TasksCompleted,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts, latency and in-flight requests.
// Requests to skipPath are not recorded. The endpoint label is the matched
// chi route pattern, so /tasks/1 and /tasks/2 share /tasks/{id}.
func (m *Metrics) Middleware(skipPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == skipPath {
				next.ServeHTTP(w, r)
				return
			}

			m.RequestsActive.Inc()
			defer m.RequestsActive.Dec()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			endpoint := routePattern(r)

			m.RequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern reads the pattern chi matched after routing completed.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedEndpoint
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedEndpoint
}

// SetTaskCounts updates the task gauges from stats.
func (m *Metrics) SetTaskCounts(stats *domain.Stats) {
	if stats == nil {
		return
	}
	m.TasksTotal.Set(float64(stats.TotalTasks))
	m.TasksCompleted.Set(float64(stats.CompletedTasks))
}

// StatsProvider supplies current task statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

// TaskGaugeUpdater refreshes the task gauges after every task event.
// Refreshes are serialized so a slower, older snapshot can never overwrite
// a newer one.
type TaskGaugeUpdater struct {
	mu       sync.Mutex
	metrics  *Metrics
	provider StatsProvider
	logger   *slog.Logger
}

var _ events.EventHandler = (*TaskGaugeUpdater)(nil)

// NewTaskGaugeUpdater creates an updater reading statistics from provider.
func NewTaskGaugeUpdater(m *Metrics, provider StatsProvider, log *slog.Logger) *TaskGaugeUpdater {
	if log == nil {
		log = slog.Default()
	}
	return &TaskGaugeUpdater{
		metrics:  m,
		provider: provider,
		logger:   log.With(slog.String("component", "task_gauge_updater")),
	}
}

// Refresh reads the current statistics and updates the gauges.
func (u *TaskGaugeUpdater) Refresh(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	stats, err := u.provider.Stats(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, u.logger).Warn("failed to refresh task gauges",
			slog.String("error", err.Error()))
		return err
	}
	u.metrics.SetTaskCounts(stats)
	return nil
}

// HandleEvent implements events.EventHandler.
func (u *TaskGaugeUpdater) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	return u.Refresh(ctx)
}
