package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

// RaffleHandler handles raffle round HTTP requests
type RaffleHandler struct {
	raffle services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffle services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffle: raffle,
	}
}

// EnterRequest is the body of POST /raffle/entries
type EnterRequest struct {
	Account string  `json:"account" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
}

// Enter handles POST /raffle/entries
func (h *RaffleHandler) Enter(c *gin.Context) {
	var request EnterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.raffle.Enter(c.Request.Context(), request.Account, request.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientStake):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrRoundNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record entry: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetRaffle handles GET /raffle
func (h *RaffleHandler) GetRaffle(c *gin.Context) {
	c.JSON(http.StatusOK, h.raffle.Snapshot())
}

// CheckUpkeep handles GET /raffle/upkeep. Trigger networks poll this and
// call PerformUpkeep when ready is true.
func (h *RaffleHandler) CheckUpkeep(c *gin.Context) {
	_, status := h.raffle.CheckDrawReady()
	c.JSON(http.StatusOK, status)
}

// PerformUpkeep handles POST /raffle/upkeep. Deliberately unauthenticated:
// the gate conditions, not the caller's identity, decide whether a draw
// starts, so racing callers are harmless.
func (h *RaffleHandler) PerformUpkeep(c *gin.Context) {
	requestID, err := h.raffle.StartDraw(c.Request.Context())
	if err != nil {
		var notNeeded *services.UpkeepNotNeededError
		switch {
		case errors.As(err, &notNeeded):
			c.JSON(http.StatusConflict, gin.H{"error": "upkeep not needed", "status": notNeeded.Status})
		case errors.Is(err, services.ErrRoundNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to start draw: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"requestId": requestID})
}

// GetParticipants handles GET /raffle/participants
func (h *RaffleHandler) GetParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.raffle.ParticipantCount()})
}

// GetParticipant handles GET /raffle/participants/:index
func (h *RaffleHandler) GetParticipant(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index format"})
		return
	}

	account, err := h.raffle.Participant(index)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"index": index, "account": account})
}

// GetLastWinner handles GET /raffle/winner
func (h *RaffleHandler) GetLastWinner(c *gin.Context) {
	winner, err := h.raffle.LastWinner()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, winner)
}
