package models

import "time"

type BetKind string

const (
	BetKindNumber BetKind = "number"
	BetKindColor  BetKind = "color"
	BetKindParity BetKind = "parity"
)

// Bet is a wager accepted into the current round. Immutable once queued.
type Bet struct {
	AccountID string    `json:"account_id"`
	Kind      BetKind   `json:"kind"`
	Value     string    `json:"value"`
	Amount    float64   `json:"amount"`
	PlacedAt  time.Time `json:"placed_at"`
}

type BetRequest struct {
	Kind   BetKind `json:"kind" binding:"required"`
	Value  string  `json:"value"`
	Amount float64 `json:"amount"`
}
