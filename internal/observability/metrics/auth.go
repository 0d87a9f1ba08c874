package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_registrations_total",
			Help: "Total number of successful registrations",
		},
	)

	RegistrationsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_registrations_rejected_total",
			Help: "Total number of registrations rejected for a taken username",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	SessionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_sessions_issued_total",
			Help: "Total number of session cookies issued",
		},
	)

	SessionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jokehub_sessions_rejected_total",
			Help: "Total number of session cookies that failed verification",
		},
	)
)
