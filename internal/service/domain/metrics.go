package domain

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sorcerer",
		Subsystem: "domain",
		Name:      "requests_total",
		Help:      "Dispatched requests by domain and outcome (ok, input_error, error).",
	},
	[]string{"domain", "outcome"},
)
