package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shareit",
		Name:      "bookings_created_total",
		Help:      "Bookings created in WAITING status.",
	})

	BookingDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shareit",
		Name:      "booking_decisions_total",
		Help:      "Owner decisions on waiting bookings.",
	}, []string{"status"})

	BookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shareit",
		Name:      "booking_failures_total",
		Help:      "Booking operations refused, by operation and error kind.",
	}, []string{"operation", "kind"})

	BookingLockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "shareit",
		Name:      "booking_lock_wait_seconds",
		Help:      "Time spent acquiring the per-item booking lock.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
)
