package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/polls/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", Handler(reg))

	for _, path := range []string{"/polls/a", "/polls/b", "/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/polls/{id}", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/healthz", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.InFlight))
}

func TestObserve_NilSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveVote("accepted")
		m.ObserveLike("like", "ok")
		m.ObserveComment()
		m.ObservePollCreated()
	})
}

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveVote("accepted")
	m.ObserveVote("duplicate")
	m.ObserveVote("duplicate")
	m.ObserveLike("unlike", "ok")
	m.ObserveComment()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Votes.WithLabelValues("accepted")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Votes.WithLabelValues("duplicate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Likes.WithLabelValues("unlike", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Comments))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.PollsCreated))
}
