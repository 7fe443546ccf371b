package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()
	m.EntryRegistered("recipe")
	m.EntryRegistered("recipe")
	m.EntryRegistered("ingredient")
	m.RegistrationRejected("duplicate_name")
	m.SummaryComputed("ok")
	m.SummaryCacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registered.WithLabelValues("recipe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registered.WithLabelValues("ingredient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("duplicate_name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.summaries.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.EntryRegistered("recipe")
		m.RegistrationRejected("invalid_type")
		m.SummaryComputed("not_found")
		m.SummaryCacheHit()
	})
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	m.EntryRegistered("ingredient")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cookbook_entries_registered_total{type="ingredient"} 1`)
}
