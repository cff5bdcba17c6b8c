package lookup

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LookupRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Profile lookups by provider and result",
		},
		[]string{"provider", "result"},
	)
	LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lookup_duration_seconds",
			Help:    "Profile lookup latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	LookupCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lookup_cache_hits_total",
			Help: "Profile lookups served from cache",
		},
	)
)

func init() {
	prometheus.MustRegister(LookupRequests)
	prometheus.MustRegister(LookupDuration)
	prometheus.MustRegister(LookupCacheHits)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
