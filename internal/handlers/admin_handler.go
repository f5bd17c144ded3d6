package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

// AdminHandler exposes operator recovery actions. Both routes sit behind
// JWT auth.
type AdminHandler struct {
	raffle services.RaffleService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(raffle services.RaffleService) *AdminHandler {
	return &AdminHandler{
		raffle: raffle,
	}
}

// ForceReopen handles POST /admin/raffle/reopen
func (h *AdminHandler) ForceReopen(c *gin.Context) {
	if err := h.raffle.ForceReopen(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrRoundNotDrawing) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reopen round: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.raffle.Snapshot())
}

// RetryPayout handles POST /admin/raffle/payout/retry
func (h *AdminHandler) RetryPayout(c *gin.Context) {
	winner, err := h.raffle.RetryPayout(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingPayout):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPayoutTransferFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retry payout: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, winner)
}
