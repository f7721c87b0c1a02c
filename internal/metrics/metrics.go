package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BetsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roulette_bets_placed_total",
		Help: "Bets accepted into a round, by kind.",
	}, []string{"kind"})

	BetsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roulette_bets_rejected_total",
		Help: "Bets rejected before queueing, by reason.",
	}, []string{"reason"})

	RoundsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_rounds_resolved_total",
		Help: "Rounds that completed a resolution pass.",
	})

	PayoutTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roulette_payout_coins_total",
		Help: "Coins credited back to players by resolutions.",
	})
)
