package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EligibilityDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_decisions_total",
			Help: "Completed eligibility checks by outcome",
		},
		[]string{"outcome"},
	)
	CardsClaimed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_claimed_total",
			Help: "Claimed community cards by rarity",
		},
		[]string{"rarity"},
	)
)

func init() {
	prometheus.MustRegister(EligibilityDecisions)
	prometheus.MustRegister(CardsClaimed)
}
