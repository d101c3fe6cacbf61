// Package metrics registers the Prometheus instruments for the duel service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service's Prometheus collectors. Constructed once and
// injected, so tests can use their own registry.
type Metrics struct {
	MatchesStarted prometheus.Counter
	MatchesEnded   *prometheus.CounterVec
	HandsSettled   *prometheus.CounterVec
	Actions        *prometheus.CounterVec
	ActionErrors   *prometheus.CounterVec
}

// New registers the duel metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		MatchesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pokerduel_matches_started_total",
			Help: "Number of matches started.",
		}),
		MatchesEnded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pokerduel_matches_ended_total",
			Help: "Number of matches ended, by outcome.",
		}, []string{"outcome"}),
		HandsSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pokerduel_hands_settled_total",
			Help: "Number of hands settled, by reason.",
		}, []string{"reason"}),
		Actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pokerduel_actions_total",
			Help: "Number of accepted game actions, by kind.",
		}, []string{"action"}),
		ActionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pokerduel_action_errors_total",
			Help: "Number of rejected game actions, by error kind.",
		}, []string{"kind"}),
	}
}
