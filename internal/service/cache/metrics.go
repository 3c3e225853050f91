package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sorcerer",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Fingerprint cache lookups by result (hit, miss, error)",
	}, []string{"feature", "result"})

	writes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sorcerer",
		Subsystem: "cache",
		Name:      "writes_total",
		Help:      "Fingerprint cache writes by result (ok, error, skipped)",
	}, []string{"feature", "result"})
)
