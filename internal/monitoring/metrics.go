package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	checkinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	sweeperRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweeper_runs_total",
			Help: "Total sweeper executions",
		},
	)

	eventsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_completed_total",
			Help: "Events transitioned to completed by the sweeper",
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification deliveries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

func ObserveRegistration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveCheckIn(outcome string) {
	checkinsTotal.WithLabelValues(outcome).Inc()
}

func ObserveSweep(eventsCompleted int) {
	sweeperRunsTotal.Inc()
	eventsCompletedTotal.Add(float64(eventsCompleted))
}

func ObserveNotification(kind, outcome string) {
	notificationsTotal.WithLabelValues(kind, outcome).Inc()
}
