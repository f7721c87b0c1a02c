package services

import (
	"sync"

	"roulette-miniapp-backend/internal/models"
)

// BetQueue holds the bets accepted for the current round. Enqueue and
// DrainAll are mutually exclusive, so a bet lands either in this drain
// or the next one, never both and never neither.
type BetQueue struct {
	mu   sync.Mutex
	bets []models.Bet
}

func NewBetQueue() *BetQueue {
	return &BetQueue{}
}

func (q *BetQueue) Enqueue(bet models.Bet) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.bets = append(q.bets, bet)
}

// DrainAll atomically empties the queue, returning all bets accepted
// since the last drain in submission order.
func (q *BetQueue) DrainAll() []models.Bet {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.bets
	q.bets = nil
	return drained
}

func (q *BetQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.bets)
}
