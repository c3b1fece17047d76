package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PositionsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbook_positions_received_total",
		Help: "Position samples accepted from the MQTT stream",
	})
	PositionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbook_positions_rejected_total",
		Help: "Position samples dropped by validation",
	})
	AutoTripStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbook_auto_trip_starts_total",
		Help: "Trips started by the tracking monitor",
	})
	AutoTripStops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbook_auto_trip_stops_total",
		Help: "Trips ended by the tracking monitor",
	})
	AutoTripFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_auto_trip_failures_total",
		Help: "Failed automatic trip actions by kind",
	}, []string{"kind"})
	ReceiptScans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logbook_receipt_scans_total",
		Help: "Receipt scan attempts by outcome",
	}, []string{"outcome"})
	EventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logbook_trip_events_published_total",
		Help: "Trip events published to the broker",
	})
)
