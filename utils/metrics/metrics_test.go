package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMonitorMetrics("test_monitor", reg)
	require.NotNil(t, m)

	m.Cycles.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Cycles))

	m.Quotes.WithLabelValues("QuickSwap").Inc()
	m.Quotes.WithLabelValues("QuickSwap").Inc()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Quotes.WithLabelValues("QuickSwap")))

	m.FetchFailures.WithLabelValues("SushiSwap").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchFailures.WithLabelValues("SushiSwap")))

	m.QuotePrice.WithLabelValues("QuickSwap").Set(3000.5)
	assert.Equal(t, 3000.5, testutil.ToFloat64(m.QuotePrice.WithLabelValues("QuickSwap")))

	m.Opportunities.WithLabelValues("QuickSwap", "SushiSwap").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Opportunities.WithLabelValues("QuickSwap", "SushiSwap")))

	m.LastProfit.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.LastProfit))

	// For histograms, we can only verify that they accept observations
	m.FetchLatency.WithLabelValues("QuickSwap").Observe(0.1)
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchLatency))
}

func TestMonitorMetricsSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMonitorMetrics(Namespace, prometheus.NewRegistry())
		NewMonitorMetrics(Namespace, prometheus.NewRegistry())
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMonitorMetrics(Namespace, reg)
	m.Cycles.Inc()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dexwatch_cycles_total 1")
}
