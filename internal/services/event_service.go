package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/events"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
)

// EventService consumes raffle events published by the round: it journals
// them, archives winners, and broadcasts to websocket observers. Publish
// never blocks the round; the journal is observability, not a correctness
// dependency.
type EventService interface {
	Publish(event models.RaffleEvent)
	RecentEvents(ctx context.Context, limit int) ([]*models.RaffleEvent, error)
	EventsByType(ctx context.Context, eventType models.RaffleEventType, limit int) ([]*models.RaffleEvent, error)
	RecentWinners(ctx context.Context, limit int) ([]*models.WinnerRecord, error)
	WinnersByAccount(ctx context.Context, account string) ([]*models.WinnerRecord, error)
	Close()
}

// Compile-time check to ensure EventServiceImpl implements EventService
var _ EventService = (*EventServiceImpl)(nil)

// EventServiceImpl is the buffered-channel implementation of EventService
type EventServiceImpl struct {
	eventRepo  repositories.RaffleEventRepository
	winnerRepo repositories.WinnerRepository
	hub        *events.Hub

	ch        chan models.RaffleEvent
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
}

const eventBufferSize = 256

// NewEventService creates an EventServiceImpl and starts its consumer
func NewEventService(eventRepo repositories.RaffleEventRepository, winnerRepo repositories.WinnerRepository, hub *events.Hub) *EventServiceImpl {
	s := &EventServiceImpl{
		eventRepo:  eventRepo,
		winnerRepo: winnerRepo,
		hub:        hub,
		ch:         make(chan models.RaffleEvent, eventBufferSize),
		done:       make(chan struct{}),
	}
	go s.consume()
	return s
}

// Publish enqueues an event without blocking. When the buffer is full the
// event is dropped with a warning. Publishing after Close is a no-op, so
// a fulfillment racing shutdown cannot panic the process.
func (s *EventServiceImpl) Publish(event models.RaffleEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- event:
	default:
		slog.Warn("event buffer full, dropping event", "type", event.Type)
	}
}

// consume drains the event channel until Close
func (s *EventServiceImpl) consume() {
	defer close(s.done)
	for event := range s.ch {
		s.handle(event)
	}
}

func (s *EventServiceImpl) handle(event models.RaffleEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.eventRepo.Create(ctx, &event); err != nil {
		slog.Error("failed to journal raffle event", "error", err, "type", event.Type)
	}

	if event.Type == models.RaffleEventWinnerPicked {
		record := &models.WinnerRecord{
			Account:      event.Account,
			Amount:       event.Amount,
			RequestID:    event.RequestID,
			Participants: event.Participants,
			WonAt:        event.At,
		}
		if err := s.winnerRepo.Create(ctx, record); err != nil {
			slog.Error("failed to archive winner record", "error", err, "account", event.Account)
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(event)
	}
}

// RecentEvents returns the newest journal entries
func (s *EventServiceImpl) RecentEvents(ctx context.Context, limit int) ([]*models.RaffleEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.eventRepo.FindRecent(ctx, limit)
}

// EventsByType returns the newest journal entries of one type
func (s *EventServiceImpl) EventsByType(ctx context.Context, eventType models.RaffleEventType, limit int) ([]*models.RaffleEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.eventRepo.FindByType(ctx, eventType, limit)
}

// RecentWinners returns the newest archived winners
func (s *EventServiceImpl) RecentWinners(ctx context.Context, limit int) ([]*models.WinnerRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.winnerRepo.FindRecent(ctx, limit)
}

// WinnersByAccount returns every archived win for one account
func (s *EventServiceImpl) WinnersByAccount(ctx context.Context, account string) ([]*models.WinnerRecord, error) {
	return s.winnerRepo.FindByAccount(ctx, account)
}

// Close stops the consumer after draining queued events
func (s *EventServiceImpl) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.ch)
		<-s.done
	})
}
