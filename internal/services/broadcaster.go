package services

import (
	"time"

	"roulette-miniapp-backend/internal/models"
)

// Broadcaster pushes round lifecycle events to connected clients.
type Broadcaster interface {
	RoundOpen(round int64, closesAt, resolvesAt time.Time)
	RoundResolved(round int64, outcome models.Outcome)
}

type noopBroadcaster struct{}

func (noopBroadcaster) RoundOpen(int64, time.Time, time.Time) {}
func (noopBroadcaster) RoundResolved(int64, models.Outcome)   {}

// History records wallet transactions for the account history feed.
type History interface {
	SaveTransaction(tx *models.Transaction) error
}

// PlayRecorder appends one audit row per resolved bet.
type PlayRecorder interface {
	Record(round int64, bet models.Bet, label string, payout float64) error
}
