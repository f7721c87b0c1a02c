package models

const (
	LabelWin  = "win"
	LabelLose = "lose"
)

// Resolution is the outcome of a single bet for a single round. It is
// staged per account until the owner polls it once, then cleared.
type Resolution struct {
	AccountID    string  `json:"-"`
	Round        int64   `json:"round"`
	Outcome      Outcome `json:"outcome"`
	Label        string  `json:"outcome_label"` // win, lose
	Payout       float64 `json:"payout"`
	BalanceAfter float64 `json:"balance_after"`
}

// RoundStatus is the public snapshot of the current round. MyResult is
// only present when the caller had an unread resolution; reading it here
// consumes it.
type RoundStatus struct {
	Round         int64       `json:"round"`
	TimeRemaining float64     `json:"time_remaining"`
	BettingOpen   bool        `json:"betting_open"`
	LastOutcome   *Outcome    `json:"last_outcome,omitempty"`
	MyResult      *Resolution `json:"my_result,omitempty"`
}
