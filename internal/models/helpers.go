package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateTransactionID() string {
	return fmt.Sprintf("tx_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateSessionID() string {
	return uuid.NewString()
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func NewWallet(accountID string) *Wallet {
	return &Wallet{
		AccountID: accountID,
		Balance:   StartingBalance,
	}
}

func FormatCoins(amount float64) string {
	return fmt.Sprintf("%.2f coins", amount)
}
