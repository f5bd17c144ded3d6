package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

// VRFHandler receives randomness fulfillment callbacks from the coordinator
type VRFHandler struct {
	raffle services.RaffleService
}

// NewVRFHandler creates a new VRFHandler
func NewVRFHandler(raffle services.RaffleService) *VRFHandler {
	return &VRFHandler{
		raffle: raffle,
	}
}

// FulfillmentRequest is the body of POST /vrf/fulfillments
type FulfillmentRequest struct {
	RequestID   string   `json:"requestId" binding:"required"`
	RandomWords []uint64 `json:"randomWords" binding:"required"`
}

// HandleFulfillment handles POST /vrf/fulfillments. The handle check
// inside the service is the only authentication this endpoint needs: a
// callback that does not match the one outstanding request changes nothing.
func (h *VRFHandler) HandleFulfillment(c *gin.Context) {
	var request FulfillmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winner, err := h.raffle.FulfillRandomness(c.Request.Context(), request.RequestID, request.RandomWords)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownRequest):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoRandomWords):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPayoutTransferFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process fulfillment: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, winner)
}
