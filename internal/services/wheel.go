package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"roulette-miniapp-backend/internal/models"
)

// WheelSize is the number of pockets on a European single-zero wheel.
const WheelSize = 37

// NumberPayoutMultiplier is the straight-up payout for a matching
// number bet. Color and parity bets pay the stake amount.
const NumberPayoutMultiplier = 35

// DrawNumber derives the wheel number for a round from the server seed,
// crash-game style: HMAC-SHA256(seed, "round:<n>"), first 52 bits
// reduced onto the wheel. The hash is returned so the draw can be
// verified once the seed is revealed.
func DrawNumber(serverSeed string, round int64) (int, string) {
	h := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(h, "round:%d", round)
	hash := hex.EncodeToString(h.Sum(nil))

	n, _ := strconv.ParseInt(hash[:13], 16, 64)
	return int(n % WheelSize), hash
}

// VerifyDraw recomputes a past round's outcome from a revealed seed.
func VerifyDraw(serverSeed string, round int64) (models.Outcome, string) {
	number, hash := DrawNumber(serverSeed, round)
	return models.OutcomeFromNumber(number), hash
}

// Evaluate scores a single bet against the round outcome and returns
// the result label and the payout to credit. A number bet whose value
// does not parse is a losing bet, not an error.
func Evaluate(bet models.Bet, outcome models.Outcome) (string, float64) {
	switch bet.Kind {
	case models.BetKindNumber:
		picked, err := strconv.Atoi(strings.TrimSpace(bet.Value))
		if err == nil && picked == outcome.Number {
			return models.LabelWin, bet.Amount * NumberPayoutMultiplier
		}
	case models.BetKindColor:
		if strings.EqualFold(bet.Value, string(outcome.Color)) {
			return models.LabelWin, bet.Amount
		}
	case models.BetKindParity:
		if strings.EqualFold(bet.Value, string(outcome.Parity)) {
			return models.LabelWin, bet.Amount
		}
	}

	return models.LabelLose, 0
}

func generateServerSeed() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic(fmt.Sprintf("failed to read entropy for server seed: %v", err))
	}
	return hex.EncodeToString(bytes)
}

func hashServerSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}
