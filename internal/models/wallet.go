package models

import "time"

// StartingBalance is the coin balance a wallet is created with.
const StartingBalance = 1000

type Wallet struct {
	AccountID    string  `json:"account_id" redis:"account_id"`
	Balance      float64 `json:"balance" redis:"balance"`
	TotalWagered float64 `json:"total_wagered" redis:"total_wagered"`
	TotalWon     float64 `json:"total_won" redis:"total_won"`
}

type TransactionType string

const (
	TransactionTypeBet TransactionType = "bet"
	TransactionTypeWin TransactionType = "win"
)

type Transaction struct {
	ID           string          `json:"id" redis:"id"`
	AccountID    string          `json:"account_id" redis:"account_id"`
	Type         TransactionType `json:"type" redis:"type"`
	Amount       float64         `json:"amount" redis:"amount"`
	BalanceAfter float64         `json:"balance_after" redis:"balance_after"`
	Round        int64           `json:"round,omitempty" redis:"round"`
	Description  string          `json:"description" redis:"description"`
	CreatedAt    time.Time       `json:"created_at" redis:"created_at"`
}

type BalanceResponse struct {
	Balance      float64 `json:"balance"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
}
