package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"roulette-miniapp-backend/internal/models"
	"roulette-miniapp-backend/internal/services"
)

type GameHandler struct {
	engine       *services.RoundEngine
	redisService *services.RedisService
	playLog      *services.PlayLog
}

func NewGameHandler(engine *services.RoundEngine, redisService *services.RedisService, playLog *services.PlayLog) *GameHandler {
	return &GameHandler{
		engine:       engine,
		redisService: redisService,
		playLog:      playLog,
	}
}

// PlaceBet queues a bet for the current round. The stake is debited
// immediately; the result arrives with the next resolution and is
// picked up through GetStatus.
func (h *GameHandler) PlaceBet(c *gin.Context) {
	accountID := c.GetString("account_id")

	var req models.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if err := h.engine.PlaceBet(accountID, &req); err != nil {
		status, code := betErrorResponse(err)
		c.JSON(status, gin.H{"error": code})
		return
	}

	status := h.engine.Status("")
	c.JSON(http.StatusOK, gin.H{
		"accepted": true,
		"round":    status.Round,
		"bet": gin.H{
			"kind":   req.Kind,
			"value":  req.Value,
			"amount": req.Amount,
		},
		"resolves_in": status.TimeRemaining,
	})
}

func betErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBettingClosed):
		return http.StatusConflict, "betting_closed"
	case errors.Is(err, services.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, services.ErrInvalidBetType):
		return http.StatusBadRequest, "invalid_bet_type"
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusBadRequest, "insufficient_funds"
	case errors.Is(err, services.ErrUnknownAccount):
		return http.StatusNotFound, "unknown_account"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// GetStatus reports the current round and, once per resolution, the
// caller's own result.
func (h *GameHandler) GetStatus(c *gin.Context) {
	accountID := c.GetString("account_id")

	status := h.engine.Status(accountID)
	c.JSON(http.StatusOK, status)
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	accountID := c.GetString("account_id")

	wallet, err := h.redisService.GetWallet(accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		return
	}

	c.JSON(http.StatusOK, models.BalanceResponse{
		Balance:      wallet.Balance,
		TotalWagered: wallet.TotalWagered,
		TotalWon:     wallet.TotalWon,
	})
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	accountID := c.GetString("account_id")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.redisService.GetUserTransactions(accountID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get history",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// GetPlays returns the most recent resolved bets across all players.
func (h *GameHandler) GetPlays(c *gin.Context) {
	if h.playLog == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Play log disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}

	plays, err := h.playLog.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read play log",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plays": plays,
		"count": len(plays),
	})
}

// GetVerificationData exposes the committed server-seed hash so a
// client can later check that drawn outcomes were not steered.
func (h *GameHandler) GetVerificationData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"server_hash":   h.engine.ServerSeedHash(),
		"current_round": h.engine.CurrentRound(),
	})
}

// VerifyRound recomputes a past draw from a revealed server seed.
func (h *GameHandler) VerifyRound(c *gin.Context) {
	var req struct {
		ServerSeed string `json:"server_seed" binding:"required"`
		Round      int64  `json:"round" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	outcome, hash := services.VerifyDraw(req.ServerSeed, req.Round)
	c.JSON(http.StatusOK, gin.H{
		"round":           req.Round,
		"outcome":         outcome,
		"calculated_hash": hash,
	})
}
