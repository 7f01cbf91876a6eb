package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RoutingDecisionsTotal counts routing decisions by host kind and action.
var RoutingDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "routing_decisions_total",
		Help: "Total routing decisions by host kind and action",
	},
	[]string{"kind", "action"},
)
