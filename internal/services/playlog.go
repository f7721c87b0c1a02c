package services

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"roulette-miniapp-backend/internal/models"
)

// PlayLog is a sqlite audit trail with one row per resolved bet.
type PlayLog struct {
	db *sql.DB
}

type PlayRecord struct {
	ID        int64     `json:"id"`
	Round     int64     `json:"round"`
	AccountID string    `json:"account_id"`
	Kind      string    `json:"kind"`
	Value     string    `json:"value"`
	Amount    float64   `json:"amount"`
	Result    string    `json:"result"`
	Payout    float64   `json:"payout"`
	CreatedAt time.Time `json:"created_at"`
}

func OpenPlayLog(path string) (*PlayLog, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open play log: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round INTEGER NOT NULL,
			account TEXT NOT NULL,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			amount REAL NOT NULL,
			result TEXT NOT NULL,
			payout REAL NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate play log: %v", err)
	}

	return &PlayLog{db: db}, nil
}

func (p *PlayLog) Record(round int64, bet models.Bet, label string, payout float64) error {
	_, err := p.db.Exec(
		`INSERT INTO plays (round, account, kind, value, amount, result, payout) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round, bet.AccountID, string(bet.Kind), bet.Value, bet.Amount, label, payout)
	if err != nil {
		return fmt.Errorf("failed to record play: %v", err)
	}
	return nil
}

// Recent returns the newest plays first.
func (p *PlayLog) Recent(limit int) ([]PlayRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := p.db.Query(
		`SELECT id, round, account, kind, value, amount, result, payout, created_at
		 FROM plays ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %v", err)
	}
	defer rows.Close()

	var records []PlayRecord
	for rows.Next() {
		var r PlayRecord
		if err := rows.Scan(&r.ID, &r.Round, &r.AccountID, &r.Kind, &r.Value,
			&r.Amount, &r.Result, &r.Payout, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan play: %v", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func (p *PlayLog) Close() error {
	return p.db.Close()
}

var _ PlayRecorder = (*PlayLog)(nil)
