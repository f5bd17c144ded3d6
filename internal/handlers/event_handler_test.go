package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/nayanchoudhary31/raffle-service/internal/events"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories/memory"
	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

func newEventRouter(eventService services.EventService, hub *events.Hub) *gin.Engine {
	handler := NewEventHandler(eventService, hub)
	router := gin.New()
	router.GET("/raffle/events", handler.GetEvents)
	router.GET("/raffle/winners", handler.GetWinners)
	router.GET("/raffle/events/stream", handler.StreamEvents)
	return router
}

func TestGetEventsReturnsJournalNewestFirst(t *testing.T) {
	eventService := services.NewEventService(memory.NewRaffleEventRepository(), memory.NewWinnerRepository(), nil)

	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventEntered, Account: "alice", At: time.Now()})
	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventDrawRequested, RequestID: "req-1", At: time.Now()})
	eventService.Close()

	router := newEventRouter(eventService, nil)

	w := doJSON(t, router, http.MethodGet, "/raffle/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.RaffleEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, models.RaffleEventDrawRequested, entries[0].Type)
	require.Equal(t, models.RaffleEventEntered, entries[1].Type)
}

func TestGetEventsFiltersByType(t *testing.T) {
	eventService := services.NewEventService(memory.NewRaffleEventRepository(), memory.NewWinnerRepository(), nil)

	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventEntered, Account: "alice", At: time.Now()})
	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventDrawRequested, RequestID: "req-1", At: time.Now()})
	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventEntered, Account: "bob", At: time.Now()})
	eventService.Close()

	router := newEventRouter(eventService, nil)

	w := doJSON(t, router, http.MethodGet, "/raffle/events?type=ENTERED", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.RaffleEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, models.RaffleEventEntered, entry.Type)
	}

	w = doJSON(t, router, http.MethodGet, "/raffle/events?type=BOGUS", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWinners(t *testing.T) {
	eventService := services.NewEventService(memory.NewRaffleEventRepository(), memory.NewWinnerRepository(), nil)

	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventWinnerPicked, Account: "alice", Amount: 30, RequestID: "req-1", Participants: 3, At: time.Now()})
	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventWinnerPicked, Account: "bob", Amount: 20, RequestID: "req-2", Participants: 2, At: time.Now()})
	eventService.Close()

	router := newEventRouter(eventService, nil)

	w := doJSON(t, router, http.MethodGet, "/raffle/winners", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var winners []models.WinnerRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &winners))
	require.Len(t, winners, 2)
	require.Equal(t, "bob", winners[0].Account)

	w = doJSON(t, router, http.MethodGet, "/raffle/winners?account=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &winners))
	require.Len(t, winners, 1)
	require.Equal(t, "alice", winners[0].Account)
}

func TestStreamEventsDeliversBroadcast(t *testing.T) {
	hub := events.NewHub()
	eventService := services.NewEventService(memory.NewRaffleEventRepository(), memory.NewWinnerRepository(), hub)
	defer eventService.Close()

	router := newEventRouter(eventService, hub)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/raffle/events/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// the upgrade handler registers the observer; wait for it
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, hub.Count())

	eventService.Publish(models.RaffleEvent{Type: models.RaffleEventEntered, Account: "alice", Amount: 10, At: time.Now()})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got models.RaffleEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Equal(t, models.RaffleEventEntered, got.Type)
	require.Equal(t, "alice", got.Account)
}
