package models_test

import (
	"testing"

	"roulette-miniapp-backend/internal/models"
)

func TestOutcomeFromNumber(t *testing.T) {
	cases := []struct {
		number int
		color  models.Color
		parity models.Parity
	}{
		{0, models.ColorGreen, models.ParityOdd},
		{1, models.ColorRed, models.ParityOdd},
		{2, models.ColorBlack, models.ParityEven},
		{10, models.ColorBlack, models.ParityEven},
		{17, models.ColorBlack, models.ParityOdd},
		{18, models.ColorRed, models.ParityEven},
		{19, models.ColorRed, models.ParityOdd},
		{36, models.ColorRed, models.ParityEven},
	}

	for _, tc := range cases {
		outcome := models.OutcomeFromNumber(tc.number)
		if outcome.Color != tc.color {
			t.Errorf("number %d: expected color %s, got %s", tc.number, tc.color, outcome.Color)
		}
		if outcome.Parity != tc.parity {
			t.Errorf("number %d: expected parity %s, got %s", tc.number, tc.parity, outcome.Parity)
		}
	}
}

func TestRedSetSize(t *testing.T) {
	count := 0
	for n := 0; n <= 36; n++ {
		if models.IsRed(n) {
			count++
		}
	}
	if count != 18 {
		t.Errorf("expected 18 red numbers, got %d", count)
	}
	if models.IsRed(0) {
		t.Error("zero must not be red")
	}
}

func TestNewWallet(t *testing.T) {
	wallet := models.NewWallet("alice")
	if wallet.Balance != models.StartingBalance {
		t.Errorf("expected starting balance %d, got %f", models.StartingBalance, wallet.Balance)
	}
	if wallet.AccountID != "alice" {
		t.Errorf("unexpected account id %q", wallet.AccountID)
	}
}

func TestHashPassword(t *testing.T) {
	a := models.HashPassword("secret")
	b := models.HashPassword("secret")
	if a != b {
		t.Error("hash should be deterministic")
	}
	if a == models.HashPassword("other") {
		t.Error("different passwords should not collide")
	}
	if a == "secret" {
		t.Error("hash should not be the plain password")
	}
}
