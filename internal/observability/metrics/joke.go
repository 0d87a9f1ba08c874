package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JokesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_jokes_created_total",
			Help: "Total number of jokes created",
		},
	)

	JokesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokehub_jokes_served_total",
			Help: "Total number of jokes served by read kind",
		},
		[]string{"kind"},
	)
)
