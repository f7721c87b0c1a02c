package services_test

import (
	"path/filepath"
	"testing"

	"roulette-miniapp-backend/internal/models"
	"roulette-miniapp-backend/internal/services"
)

func TestPlayLogRecordAndRecent(t *testing.T) {
	playLog, err := services.OpenPlayLog(filepath.Join(t.TempDir(), "plays.db"))
	if err != nil {
		t.Fatalf("failed to open play log: %v", err)
	}
	defer playLog.Close()

	bets := []models.Bet{
		{AccountID: "alice", Kind: models.BetKindNumber, Value: "17", Amount: 10},
		{AccountID: "bob", Kind: models.BetKindColor, Value: "red", Amount: 20},
	}

	if err := playLog.Record(1, bets[0], models.LabelWin, 350); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := playLog.Record(1, bets[1], models.LabelLose, 0); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	plays, err := playLog.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(plays) != 2 {
		t.Fatalf("expected 2 plays, got %d", len(plays))
	}

	// Newest first.
	if plays[0].AccountID != "bob" || plays[1].AccountID != "alice" {
		t.Errorf("expected newest-first ordering, got %s then %s", plays[0].AccountID, plays[1].AccountID)
	}
	if plays[1].Payout != 350 || plays[1].Result != models.LabelWin {
		t.Errorf("alice row wrong: %+v", plays[1])
	}
	if plays[0].Round != 1 || plays[0].Kind != string(models.BetKindColor) {
		t.Errorf("bob row wrong: %+v", plays[0])
	}
}

func TestPlayLogRecentLimit(t *testing.T) {
	playLog, err := services.OpenPlayLog(filepath.Join(t.TempDir(), "plays.db"))
	if err != nil {
		t.Fatalf("failed to open play log: %v", err)
	}
	defer playLog.Close()

	for i := 0; i < 5; i++ {
		bet := models.Bet{AccountID: "alice", Kind: models.BetKindParity, Value: "odd", Amount: 1}
		if err := playLog.Record(int64(i+1), bet, models.LabelLose, 0); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	plays, err := playLog.Recent(3)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(plays) != 3 {
		t.Fatalf("expected 3 plays, got %d", len(plays))
	}
	if plays[0].Round != 5 {
		t.Errorf("expected newest round 5 first, got %d", plays[0].Round)
	}
}
