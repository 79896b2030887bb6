package queries

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var openOrdersQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "freight",
	Name:      "open_orders_queries_total",
	Help:      "Open order searches grouped by filter key.",
}, []string{"key"})
