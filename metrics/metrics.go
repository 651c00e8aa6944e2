package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RoomsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guesspaint_rooms",
		Help: "A gauge of rooms with at least one player.",
	})

	PlayersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guesspaint_players",
		Help: "A gauge of players connected to rooms.",
	})

	RelayedEventsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guesspaint_relayed_events_total",
		Help: "A counter for events fanned out to room members.",
	}, []string{"event"})

	APIInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "guesspaint_api_in_flight_requests",
		Help: "A gauge of requests being handled by the API server.",
	})

	APIRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guesspaint_api_requests_total",
		Help: "A counter for requests to the API server.",
	}, []string{"code", "method"})
)

func init() {
	prometheus.MustRegister(
		RoomsGauge,
		PlayersGauge,
		RelayedEventsCounter,
		APIInFlightGauge,
		APIRequestsCounter,
	)
}
