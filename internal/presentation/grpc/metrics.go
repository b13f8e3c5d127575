package grpc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "riskengine",
			Subsystem: "grpc",
			Name:      "assessments_total",
			Help:      "Total number of transaction assessments by decision",
		},
		[]string{"decision"},
	)

	hardBlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "riskengine",
			Subsystem: "grpc",
			Name:      "hard_blocks_total",
			Help:      "Total number of assessments rejected by the chargeback hard block",
		},
	)
)
