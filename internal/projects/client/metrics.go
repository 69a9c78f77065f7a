package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projects_client",
		Name:      "upstream_calls_total",
		Help:      "Calls made to the projects API, by operation and outcome.",
	}, []string{"op", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "projects_client",
		Name:      "upstream_call_duration_seconds",
		Help:      "Latency of calls made to the projects API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)

func recordUpstreamCall(op string, started time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamCalls.WithLabelValues(op, outcome).Inc()
	upstreamLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}
