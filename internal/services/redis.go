package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"roulette-miniapp-backend/internal/config"
	"roulette-miniapp-backend/internal/models"
)

var ErrUserExists = errors.New("username already taken")

type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{
		client: client,
		ctx:    ctx,
	}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

func (s *RedisService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// --- users and sessions ---

// CreateUser stores a new user, failing when the username is taken.
func (s *RedisService) CreateUser(user *models.User) error {
	key := fmt.Sprintf(KeyUser, user.Username)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(s.ctx, key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store user: %v", err)
	}
	if !ok {
		return ErrUserExists
	}
	return nil
}

func (s *RedisService) GetUser(username string) (*models.User, error) {
	key := fmt.Sprintf(KeyUser, username)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %v", err)
	}
	return &user, nil
}

func (s *RedisService) StoreUserSession(session *models.UserSession, expiry time.Duration) error {
	key := fmt.Sprintf(KeyUserSession, session.AccountID, session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(s.ctx, key, data, expiry).Err()
}

func (s *RedisService) GetUserSession(accountID, sessionID string) (*models.UserSession, error) {
	key := fmt.Sprintf(KeyUserSession, accountID, sessionID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var session models.UserSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	session.LastAccessed = time.Now()
	updatedData, _ := json.Marshal(session)
	s.client.Set(s.ctx, key, updatedData, TTLUserSession)

	return &session, nil
}

func (s *RedisService) DeleteUserSession(accountID, sessionID string) error {
	key := fmt.Sprintf(KeyUserSession, accountID, sessionID)
	return s.client.Del(s.ctx, key).Err()
}

// --- wallets (Ledger implementation) ---

// CreateWallet initializes an account balance, keeping an existing
// wallet untouched.
func (s *RedisService) CreateWallet(accountID string) error {
	key := fmt.Sprintf(KeyWallet, accountID)

	data, err := json.Marshal(models.NewWallet(accountID))
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}

	return s.client.SetNX(s.ctx, key, data, 0).Err()
}

func (s *RedisService) GetWallet(accountID string) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, accountID)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}
	return &wallet, nil
}

var debitScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	if wallet.balance < amount then
		return redis.error_reply("insufficient balance")
	end

	wallet.balance = wallet.balance - amount
	wallet.total_wagered = wallet.total_wagered + amount

	redis.call("SET", key, cjson.encode(wallet))

	return "OK"
`)

var creditScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.balance = wallet.balance + amount
	wallet.total_won = wallet.total_won + amount

	redis.call("SET", key, cjson.encode(wallet))

	return "OK"
`)

// Debit removes the stake from the account balance. The Lua script
// makes the read-check-write atomic against concurrent debits/credits.
func (s *RedisService) Debit(accountID string, amount float64) error {
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	key := fmt.Sprintf(KeyWallet, accountID)
	if err := debitScript.Run(s.ctx, s.client, []string{key}, amount).Err(); err != nil {
		return mapWalletError(err)
	}
	return nil
}

func (s *RedisService) Credit(accountID string, amount float64) error {
	if amount == 0 {
		return nil
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}

	key := fmt.Sprintf(KeyWallet, accountID)
	if err := creditScript.Run(s.ctx, s.client, []string{key}, amount).Err(); err != nil {
		return mapWalletError(err)
	}
	return nil
}

func (s *RedisService) Balance(accountID string) (float64, error) {
	wallet, err := s.GetWallet(accountID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func mapWalletError(err error) error {
	switch {
	case strings.Contains(err.Error(), "insufficient balance"):
		return ErrInsufficientFunds
	case strings.Contains(err.Error(), "wallet not found"):
		return ErrUnknownAccount
	default:
		return fmt.Errorf("wallet operation failed: %v", err)
	}
}

// --- transactions ---

func (s *RedisService) SaveTransaction(tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	if err := s.client.Set(s.ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.AccountID)
	score := float64(tx.CreatedAt.Unix())

	if err := s.client.ZAdd(s.ctx, userTxKey, redis.Z{
		Score:  score,
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to user transactions: %v", err)
	}

	// Keep only last 100 transactions
	s.client.ZRemRangeByRank(s.ctx, userTxKey, 0, -101)

	return nil
}

func (s *RedisService) GetUserTransactions(accountID string, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, accountID)

	txIDs, err := s.client.ZRevRange(s.ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		txKey := fmt.Sprintf(KeyTransaction, txID)

		data, err := s.client.Get(s.ctx, txKey).Result()
		if err != nil {
			continue
		}

		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}

		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

// --- rate limiting ---

func (s *RedisService) CheckRateLimit(accountID, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, accountID, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

// --- test helpers ---

func (s *RedisService) DeleteUser(username string) error {
	return s.client.Del(s.ctx, fmt.Sprintf(KeyUser, username)).Err()
}

func (s *RedisService) DeleteWallet(accountID string) error {
	return s.client.Del(s.ctx, fmt.Sprintf(KeyWallet, accountID)).Err()
}

func (s *RedisService) ClearBetRateLimit(accountID string) error {
	return s.client.Del(s.ctx, fmt.Sprintf(KeyRateLimit, accountID, "bet")).Err()
}
