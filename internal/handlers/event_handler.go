package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nayanchoudhary31/raffle-service/internal/events"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

// EventHandler serves the raffle event journal and its live stream
type EventHandler struct {
	events services.EventService
	hub    *events.Hub
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventService, hub *events.Hub) *EventHandler {
	return &EventHandler{
		events: eventService,
		hub:    hub,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The event stream is public observability output; origins are not restricted
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GetEvents handles GET /raffle/events. An optional type query narrows
// the journal to one event type.
func (h *EventHandler) GetEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var entries []*models.RaffleEvent
	var err error
	if eventType := c.Query("type"); eventType != "" {
		switch t := models.RaffleEventType(eventType); t {
		case models.RaffleEventEntered, models.RaffleEventDrawRequested,
			models.RaffleEventWinnerPicked, models.RaffleEventRoundReopened:
			entries, err = h.events.EventsByType(c.Request.Context(), t, limit)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type: " + eventType})
			return
		}
	} else {
		entries, err = h.events.RecentEvents(c.Request.Context(), limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read event journal: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetWinners handles GET /raffle/winners. An optional account query
// returns only that account's wins.
func (h *EventHandler) GetWinners(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var winners []*models.WinnerRecord
	var err error
	if account := c.Query("account"); account != "" {
		winners, err = h.events.WinnersByAccount(c.Request.Context(), account)
	} else {
		winners, err = h.events.RecentWinners(c.Request.Context(), limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read winner archive: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, winners)
}

// StreamEvents handles GET /raffle/events/stream and upgrades to a
// websocket that receives every raffle event as a JSON frame
func (h *EventHandler) StreamEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.hub.Register(conn)

	// Reads are discarded; the loop exists to notice the peer going away
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
