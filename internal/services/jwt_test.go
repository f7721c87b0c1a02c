package services_test

import (
	"testing"
	"time"

	"roulette-miniapp-backend/internal/config"
	"roulette-miniapp-backend/internal/services"
)

func TestJWTRoundTrip(t *testing.T) {
	jwtService := services.NewJWTService(&config.Config{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})

	token, err := jwtService.GenerateToken("alice", "session-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.AccountID != "alice" || claims.SessionID != "session-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := services.NewJWTService(&config.Config{JWTSecret: "secret-a", SessionTTL: time.Hour})
	verifier := services.NewJWTService(&config.Config{JWTSecret: "secret-b", SessionTTL: time.Hour})

	token, err := issuer.GenerateToken("alice", "session-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}
