package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric the monitor exports
const Namespace = "dexwatch"

type MonitorMetrics struct {
	Cycles        prometheus.Counter
	Quotes        *prometheus.CounterVec
	FetchFailures *prometheus.CounterVec
	FetchLatency  *prometheus.HistogramVec
	QuotePrice    *prometheus.GaugeVec
	Opportunities *prometheus.CounterVec
	LastProfit    prometheus.Gauge
}

// NewMonitorMetrics registers the monitor's metrics with reg
func NewMonitorMetrics(namespace string, reg prometheus.Registerer) *MonitorMetrics {
	factory := promauto.With(reg)

	return &MonitorMetrics{
		Cycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Total number of polling cycles started",
		}),
		Quotes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Total number of successful quotes per venue",
		}, []string{"venue"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Total number of failed quote fetches per venue",
		}, []string{"venue"}),
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_latency_seconds",
			Help:      "getAmountsOut round trip time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"venue"}),
		QuotePrice: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quote_price",
			Help:      "Last normalised price quoted per venue",
		}, []string{"venue"}),
		Opportunities: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "opportunities_total",
			Help:      "Total number of reported opportunities per direction",
		}, []string{"buy", "sell"}),
		LastProfit: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_profit",
			Help:      "Simulated profit of the most recent opportunity",
		}),
	}
}
