package services_test

import (
	"errors"
	"testing"
	"time"

	"roulette-miniapp-backend/internal/config"
	"roulette-miniapp-backend/internal/models"
	"roulette-miniapp-backend/internal/services"
)

func setupTestRedis(t *testing.T) *services.RedisService {
	cfg := &config.Config{
		RedisURL:  "localhost:6379",
		RedisPass: "",
		RedisDB:   0,
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return redisService
}

func TestRedisWalletLedger(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	accountID := "redis-test-alice"
	defer redisService.DeleteWallet(accountID)

	if err := redisService.CreateWallet(accountID); err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}

	wallet, err := redisService.GetWallet(accountID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if wallet.Balance != models.StartingBalance {
		t.Errorf("expected starting balance %d, got %f", models.StartingBalance, wallet.Balance)
	}

	if err := redisService.Debit(accountID, 100); err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	wallet, err = redisService.GetWallet(accountID)
	if err != nil {
		t.Fatalf("failed to get wallet after debit: %v", err)
	}
	if wallet.Balance != models.StartingBalance-100 {
		t.Errorf("expected balance %d after debit, got %f", models.StartingBalance-100, wallet.Balance)
	}
	if wallet.TotalWagered != 100 {
		t.Errorf("expected total wagered 100, got %f", wallet.TotalWagered)
	}

	err = redisService.Debit(accountID, 1e9)
	if !errors.Is(err, services.ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}

	if err := redisService.Credit(accountID, 50); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	balance, err := redisService.Balance(accountID)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != models.StartingBalance-100+50 {
		t.Errorf("expected balance %d, got %f", models.StartingBalance-50, balance)
	}

	err = redisService.Debit("redis-test-nobody", 10)
	if !errors.Is(err, services.ErrUnknownAccount) {
		t.Errorf("expected ErrUnknownAccount, got %v", err)
	}
}

func TestRedisUsersAndSessions(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	username := "redis-test-bob"
	defer redisService.DeleteUser(username)

	user := &models.User{
		Username:     username,
		PasswordHash: models.HashPassword("hunter2"),
		CreatedAt:    time.Now(),
	}

	if err := redisService.CreateUser(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	err := redisService.CreateUser(user)
	if !errors.Is(err, services.ErrUserExists) {
		t.Errorf("expected ErrUserExists for duplicate, got %v", err)
	}

	fetched, err := redisService.GetUser(username)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if fetched.PasswordHash != user.PasswordHash {
		t.Error("password hash mismatch")
	}

	session := &models.UserSession{
		AccountID:    username,
		SessionID:    models.GenerateSessionID(),
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	if err := redisService.StoreUserSession(session, time.Minute); err != nil {
		t.Fatalf("failed to store session: %v", err)
	}

	got, err := redisService.GetUserSession(username, session.SessionID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if got.AccountID != username {
		t.Errorf("session account mismatch: %s", got.AccountID)
	}

	if err := redisService.DeleteUserSession(username, session.SessionID); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}
	if _, err := redisService.GetUserSession(username, session.SessionID); err == nil {
		t.Error("deleted session should not be readable")
	}
}

func TestRedisTransactionsAndRateLimit(t *testing.T) {
	redisService := setupTestRedis(t)
	defer redisService.Close()

	accountID := "redis-test-carol"
	defer redisService.ClearBetRateLimit(accountID)

	tx := &models.Transaction{
		ID:          models.GenerateTransactionID(),
		AccountID:   accountID,
		Type:        models.TransactionTypeBet,
		Amount:      10,
		Round:       3,
		Description: "Placed color bet on \"red\"",
		CreatedAt:   time.Now(),
	}

	if err := redisService.SaveTransaction(tx); err != nil {
		t.Fatalf("failed to save transaction: %v", err)
	}

	transactions, err := redisService.GetUserTransactions(accountID, 10)
	if err != nil {
		t.Fatalf("failed to get transactions: %v", err)
	}
	if len(transactions) == 0 {
		t.Fatal("expected at least one transaction")
	}
	if transactions[0].ID != tx.ID {
		t.Errorf("expected newest transaction %s first, got %s", tx.ID, transactions[0].ID)
	}

	allowed, err := redisService.CheckRateLimit(accountID, "bet", 5, time.Minute)
	if err != nil {
		t.Fatalf("rate limit check failed: %v", err)
	}
	if !allowed {
		t.Error("first request should pass the rate limit")
	}
}
