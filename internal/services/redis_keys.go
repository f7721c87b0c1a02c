package services

import "time"

const (
	KeyUser             = "user:%s:info"
	KeyUserSession      = "user:%s:session:%s"
	KeyWallet           = "wallet:%s"
	KeyTransaction      = "transaction:%s"
	KeyUserTransactions = "user:%s:transactions"
	KeyRateLimit        = "ratelimit:%s:%s"

	TTLUserSession = 24 * time.Hour
	TTLUser        = 0 // accounts do not expire
	TTLTransaction = 30 * 24 * time.Hour

	DefaultRateLimitBets = 30 // max 30 bet requests per minute
)
