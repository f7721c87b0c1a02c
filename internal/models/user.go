package models

import "time"

type User struct {
	Username     string    `json:"username" redis:"username"`
	PasswordHash string    `json:"-" redis:"password_hash"`
	CreatedAt    time.Time `json:"created_at" redis:"created_at"`
}

type UserSession struct {
	AccountID    string    `json:"account_id" redis:"account_id"`
	SessionID    string    `json:"session_id" redis:"session_id"`
	CreatedAt    time.Time `json:"created_at" redis:"created_at"`
	LastAccessed time.Time `json:"last_accessed" redis:"last_accessed"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
