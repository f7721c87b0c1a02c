package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"roulette-miniapp-backend/internal/metrics"
	"roulette-miniapp-backend/internal/models"
)

var (
	ErrBettingClosed  = errors.New("betting is closed for this round")
	ErrInvalidBetType = errors.New("invalid bet type")
)

// RoundEngine owns the round lifecycle: it accepts bets while the
// window is open, rejects them during the trailing guard window, and at
// the round boundary draws one outcome, resolves every queued bet
// against it and opens the next round.
//
// A single timer goroutine drives resolution; PlaceBet and Status are
// called from arbitrary request goroutines. The engine mutex makes the
// resolution pass atomic with respect to both: a concurrent placement
// sees either the previous round (and a definitive accept/closed) or
// the new one, never a torn state.
type RoundEngine struct {
	ledger   Ledger
	queue    *BetQueue
	results  *ResultStore
	caster   Broadcaster
	history  History
	recorder PlayRecorder
	log      *zap.Logger

	roundDuration time.Duration
	guardDuration time.Duration
	serverSeed    string

	mu          sync.Mutex
	round       int64
	endTime     time.Time
	lastOutcome *models.Outcome

	stop chan struct{}
	done chan struct{}
}

func NewRoundEngine(ledger Ledger, roundDuration, guardDuration time.Duration, log *zap.Logger) *RoundEngine {
	if guardDuration >= roundDuration {
		panic(fmt.Sprintf("guard window %s must be shorter than the round %s", guardDuration, roundDuration))
	}

	return &RoundEngine{
		ledger:        ledger,
		queue:         NewBetQueue(),
		results:       NewResultStore(),
		caster:        noopBroadcaster{},
		log:           log,
		roundDuration: roundDuration,
		guardDuration: guardDuration,
		serverSeed:    generateServerSeed(),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// SetBroadcaster wires the websocket hub in. Must be called before Start.
func (e *RoundEngine) SetBroadcaster(caster Broadcaster) {
	e.caster = caster
}

// SetHistory wires the transaction feed in. Must be called before Start.
func (e *RoundEngine) SetHistory(history History) {
	e.history = history
}

// SetPlayRecorder wires the audit log in. Must be called before Start.
func (e *RoundEngine) SetPlayRecorder(recorder PlayRecorder) {
	e.recorder = recorder
}

// Start opens the first round and launches the resolution loop.
func (e *RoundEngine) Start() {
	e.mu.Lock()
	e.round = 1
	e.endTime = time.Now().Add(e.roundDuration)
	closesAt := e.endTime.Add(-e.guardDuration)
	resolvesAt := e.endTime
	round := e.round
	e.mu.Unlock()

	e.caster.RoundOpen(round, closesAt, resolvesAt)
	e.log.Info("round opened",
		zap.Int64("round", round),
		zap.Time("resolves_at", resolvesAt))

	go e.loop()
}

// Stop terminates the resolution loop. Queued bets are not refunded;
// the process is going away with its in-memory round state anyway.
func (e *RoundEngine) Stop() {
	close(e.stop)
	<-e.done
}

func (e *RoundEngine) loop() {
	defer close(e.done)

	for {
		e.mu.Lock()
		wait := time.Until(e.endTime)
		e.mu.Unlock()
		if wait < 0 {
			wait = 0
		}

		select {
		case <-time.After(wait):
			e.resolveRound()
		case <-e.stop:
			return
		}
	}
}

// PlaceBet validates the request, checks the betting window, debits the
// stake and queues the bet for the current round. On any error nothing
// was debited and nothing was queued.
func (e *RoundEngine) PlaceBet(accountID string, req *models.BetRequest) error {
	if !validAmount(req.Amount) {
		metrics.BetsRejected.WithLabelValues("invalid_amount").Inc()
		return ErrInvalidAmount
	}

	switch req.Kind {
	case models.BetKindNumber, models.BetKindColor, models.BetKindParity:
	default:
		metrics.BetsRejected.WithLabelValues("invalid_bet_type").Inc()
		return ErrInvalidBetType
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	if now.After(e.endTime.Add(-e.guardDuration)) {
		metrics.BetsRejected.WithLabelValues("betting_closed").Inc()
		return ErrBettingClosed
	}

	if err := e.ledger.Debit(accountID, req.Amount); err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			metrics.BetsRejected.WithLabelValues("insufficient_funds").Inc()
		}
		return err
	}

	e.queue.Enqueue(models.Bet{
		AccountID: accountID,
		Kind:      req.Kind,
		Value:     req.Value,
		Amount:    req.Amount,
		PlacedAt:  now,
	})
	metrics.BetsPlaced.WithLabelValues(string(req.Kind)).Inc()

	e.recordTransaction(accountID, models.TransactionTypeBet, req.Amount, e.round,
		fmt.Sprintf("Placed %s bet on %q", req.Kind, req.Value))

	return nil
}

// Status reports the current round snapshot. When accountID is set, any
// unread resolution for it is returned and consumed.
func (e *RoundEngine) Status(accountID string) models.RoundStatus {
	e.mu.Lock()
	now := time.Now()
	remaining := e.endTime.Sub(now).Seconds()
	if remaining < 0 {
		remaining = 0
	}

	status := models.RoundStatus{
		Round:         e.round,
		TimeRemaining: remaining,
		BettingOpen:   !now.After(e.endTime.Add(-e.guardDuration)),
	}
	if e.lastOutcome != nil {
		outcome := *e.lastOutcome
		status.LastOutcome = &outcome
	}
	e.mu.Unlock()

	if accountID != "" {
		status.MyResult = e.results.Take(accountID)
	}

	return status
}

// ServerSeedHash exposes the committed hash of the draw seed so clients
// can verify past rounds after the seed is rotated and revealed.
func (e *RoundEngine) ServerSeedHash() string {
	return hashServerSeed(e.serverSeed)
}

// CurrentRound returns the id of the round currently accepting bets.
func (e *RoundEngine) CurrentRound() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round
}

// resolveRound runs the whole resolution pass under the engine mutex:
// draw, drain, credit and publish per bet in queue order, open the next
// round. The next round is opened before the credit loop so a
// persistence failure can abort the pass without wedging the scheduler.
func (e *RoundEngine) resolveRound() {
	e.mu.Lock()
	defer e.mu.Unlock()

	number, hash := DrawNumber(e.serverSeed, e.round)
	outcome := models.OutcomeFromNumber(number)
	bets := e.queue.DrainAll()

	resolved := e.round
	e.lastOutcome = &outcome
	e.round++
	e.endTime = time.Now().Add(e.roundDuration)

	for _, bet := range bets {
		label, payout := Evaluate(bet, outcome)
		if payout > 0 {
			if err := e.ledger.Credit(bet.AccountID, payout); err != nil {
				e.log.Error("credit failed, aborting resolution pass",
					zap.Int64("round", resolved),
					zap.String("account", bet.AccountID),
					zap.Float64("payout", payout),
					zap.Error(err))
				return
			}
			metrics.PayoutTotal.Add(payout)
			e.recordTransaction(bet.AccountID, models.TransactionTypeWin, payout, resolved,
				fmt.Sprintf("Won %.2f on %s bet %q", payout, bet.Kind, bet.Value))
		}

		balance, err := e.ledger.Balance(bet.AccountID)
		if err != nil {
			e.log.Warn("balance read failed after resolution",
				zap.String("account", bet.AccountID), zap.Error(err))
		}

		e.results.Publish(bet.AccountID, &models.Resolution{
			AccountID:    bet.AccountID,
			Round:        resolved,
			Outcome:      outcome,
			Label:        label,
			Payout:       payout,
			BalanceAfter: balance,
		})

		if e.recorder != nil {
			if err := e.recorder.Record(resolved, bet, label, payout); err != nil {
				e.log.Warn("play log write failed", zap.Error(err))
			}
		}
	}

	metrics.RoundsResolved.Inc()
	e.log.Info("round resolved",
		zap.Int64("round", resolved),
		zap.Int("number", outcome.Number),
		zap.String("color", string(outcome.Color)),
		zap.String("parity", string(outcome.Parity)),
		zap.String("hash", hash[:16]),
		zap.Int("bets", len(bets)))

	e.caster.RoundResolved(resolved, outcome)
	e.caster.RoundOpen(e.round, e.endTime.Add(-e.guardDuration), e.endTime)
}

func (e *RoundEngine) recordTransaction(accountID string, txType models.TransactionType, amount float64, round int64, description string) {
	if e.history == nil {
		return
	}

	balance, _ := e.ledger.Balance(accountID)
	tx := &models.Transaction{
		ID:           models.GenerateTransactionID(),
		AccountID:    accountID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balance,
		Round:        round,
		Description:  description,
		CreatedAt:    time.Now(),
	}

	if err := e.history.SaveTransaction(tx); err != nil {
		e.log.Warn("transaction save failed", zap.Error(err))
	}
}
