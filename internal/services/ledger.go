package services

import (
	"errors"
	"math"
	"sync"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrUnknownAccount    = errors.New("unknown account")
)

// Ledger is the authoritative balance store. Debit and Credit must be
// atomic per account: concurrent calls on the same account never lose
// an update, and a balance never goes negative.
type Ledger interface {
	Debit(accountID string, amount float64) error
	Credit(accountID string, amount float64) error
	Balance(accountID string) (float64, error)
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// MemoryLedger keeps balances in process memory. It backs the engine in
// tests and local runs without Redis; RedisService is the persistent
// implementation.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]float64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[string]float64)}
}

func (l *MemoryLedger) CreateAccount(accountID string, balance float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.balances[accountID]; !ok {
		l.balances[accountID] = balance
	}
}

func (l *MemoryLedger) Debit(accountID string, amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[accountID]
	if !ok {
		return ErrUnknownAccount
	}
	if balance < amount {
		return ErrInsufficientFunds
	}

	l.balances[accountID] = balance - amount
	return nil
}

func (l *MemoryLedger) Credit(accountID string, amount float64) error {
	if amount == 0 {
		return nil
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.balances[accountID]; !ok {
		return ErrUnknownAccount
	}

	l.balances[accountID] += amount
	return nil
}

func (l *MemoryLedger) Balance(accountID string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[accountID]
	if !ok {
		return 0, ErrUnknownAccount
	}
	return balance, nil
}

var _ Ledger = (*MemoryLedger)(nil)

// compile-time check that the Redis-backed wallet store satisfies the
// same contract.
var _ Ledger = (*RedisService)(nil)
