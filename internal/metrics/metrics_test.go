package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func newTestRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(m.Middleware("/metrics"))
	r.Get("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m := newTestMetrics(t)
	router := newTestRouter(m)

	for _, path := range []string{"/tasks/1", "/tasks/2", "/tasks/404"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/tasks/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/tasks/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsActive), "active gauge returns to zero")

	observer, err := m.RequestDuration.GetMetricWithLabelValues("GET", "/tasks/{id}")
	require.NoError(t, err)
	var metric dto.Metric
	require.NoError(t, observer.(prometheus.Metric).Write(&metric))
	assert.Equal(t, uint64(3), metric.GetHistogram().GetSampleCount())
}

func TestMiddlewareUnmatchedRoute(t *testing.T) {
	m := newTestMetrics(t)
	router := newTestRouter(m)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedEndpoint, "404")))
}

func TestMiddlewareSkipsMetricsPath(t *testing.T) {
	m := newTestMetrics(t)
	router := newTestRouter(m)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, 0, testutil.CollectAndCount(m.RequestsTotal))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := newTestMetrics(t)
	router := newTestRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks/1", nil))
	m.SetTaskCounts(&domain.Stats{TotalTasks: 4, CompletedTasks: 1})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, text, `http_requests_total{endpoint="/tasks/{id}",method="GET",status_code="200"} 1`)
	assert.Contains(t, text, "http_request_duration_seconds_bucket")
	assert.Contains(t, text, "tasks_total 4")
	assert.Contains(t, text, "tasks_completed 1")
}

func TestSetTaskCountsIgnoresNil(t *testing.T) {
	m := newTestMetrics(t)
	m.SetTaskCounts(&domain.Stats{TotalTasks: 2})
	m.SetTaskCounts(nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksTotal))
}

type fakeStats struct {
	stats *domain.Stats
	err   error
}

func (f *fakeStats) Stats(ctx context.Context) (*domain.Stats, error) {
	return f.stats, f.err
}

func TestTaskGaugeUpdater(t *testing.T) {
	m := newTestMetrics(t)
	provider := &fakeStats{stats: &domain.Stats{TotalTasks: 3, CompletedTasks: 2}}
	updater := NewTaskGaugeUpdater(m, provider, nil)

	event, err := events.NewTaskEvent(events.TaskCreated, 1, nil)
	require.NoError(t, err)
	require.NoError(t, updater.HandleEvent(context.Background(), event))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TasksTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksCompleted))

	provider.err = errors.New("store unavailable")
	err = updater.HandleEvent(context.Background(), event)
	assert.Error(t, err)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TasksTotal), "gauges keep their last value on failure")
}

// sequencedStats returns an older snapshot on its first call and holds that
// call open until release is closed. Later calls return the newer snapshot.
type sequencedStats struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (s *sequencedStats) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
		<-s.release
		return &domain.Stats{TotalTasks: 1}, nil
	}
	return &domain.Stats{TotalTasks: 2}, nil
}

func TestTaskGaugeUpdaterRefreshesInOrder(t *testing.T) {
	m := newTestMetrics(t)
	provider := &sequencedStats{entered: make(chan struct{}), release: make(chan struct{})}
	updater := NewTaskGaugeUpdater(m, provider, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = updater.Refresh(context.Background())
	}()
	<-provider.entered

	go func() {
		defer wg.Done()
		_ = updater.Refresh(context.Background())
	}()

	// The second refresh must wait for the first to publish.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), provider.calls.Load())

	close(provider.release)
	wg.Wait()

	assert.Equal(t, int32(2), provider.calls.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksTotal), "newest snapshot wins")
}

func TestDurationBuckets(t *testing.T) {
	assert.Equal(t, []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, DurationBuckets)
}
