package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KTee1986/mahjong-tracker/internal/service"
	"github.com/KTee1986/mahjong-tracker/internal/settle"
	"github.com/KTee1986/mahjong-tracker/internal/storage"
)

// SettleHandler pushes games into the external ledger and serves the
// normalized debt list.
type SettleHandler struct {
	settle *service.SettleService
}

// NewSettleHandler creates a SettleHandler.
func NewSettleHandler(settleSvc *service.SettleService) *SettleHandler {
	return &SettleHandler{settle: settleSvc}
}

// SettleGame submits one game's balances to the ledger.
func (h *SettleHandler) SettleGame(c *gin.Context) {
	txID, skipped, err := h.settle.SettleGame(c.Request.Context(), c.Param("id"))

	var notMapped *settle.PlayerNotMappedError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.As(err, &notMapped):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            notMapped.Error(),
			"unmapped_players": notMapped.Names,
		})
	case errors.Is(err, settle.ErrUnbalancedSettlement):
		// Score entry enforces zero-sum, so this is our bug, not theirs.
		slog.Error("Stored game failed settlement balance check", "game_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case skipped:
		c.JSON(http.StatusOK, gin.H{"skipped": true})
	default:
		c.JSON(http.StatusOK, gin.H{"transaction_id": txID})
	}
}

// Debts returns the group's normalized directional balances.
func (h *SettleHandler) Debts(c *gin.Context) {
	debts, err := h.settle.Debts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}
