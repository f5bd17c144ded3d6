package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/pkg/treasury"
	"github.com/nayanchoudhary31/raffle-service/pkg/vrf"
)

// Compile-time check to ensure RaffleServiceImpl implements RaffleService
var _ RaffleService = (*RaffleServiceImpl)(nil)

// RaffleServiceImpl holds the single recurring round. One mutex serializes
// every operation; that is the whole concurrency story. The lock is held
// across the outbound randomness request so the callback path can never
// observe a round whose request handle is not yet recorded.
type RaffleServiceImpl struct {
	mu sync.Mutex

	stakeAmount  float64
	drawInterval time.Duration
	vrfRequest   vrf.Request

	coordinator vrf.Coordinator
	treasury    treasury.Treasury
	events      EventService

	phase            models.RafflePhase
	players          []string
	pool             float64
	poolStartedAt    time.Time
	pendingRequestID string
	lastWinner       *models.WinnerRecord
	pendingPayout    *models.WinnerRecord

	now func() time.Time
}

// NewRaffleService creates a RaffleServiceImpl with an open, empty round
func NewRaffleService(cfg *config.Config, coordinator vrf.Coordinator, treas treasury.Treasury, events EventService) *RaffleServiceImpl {
	s := &RaffleServiceImpl{
		stakeAmount:  cfg.Raffle.StakeAmount,
		drawInterval: cfg.Raffle.DrawInterval,
		vrfRequest: vrf.Request{
			MinConfirmations: cfg.VRF.MinConfirmations,
			CallbackGasLimit: cfg.VRF.CallbackGasLimit,
			NumWords:         cfg.VRF.NumWords,
		},
		coordinator: coordinator,
		treasury:    treas,
		events:      events,
		phase:       models.RafflePhaseOpen,
		now:         time.Now,
	}
	s.poolStartedAt = s.now()
	return s
}

// Enter records a stake for the account. The tendered amount must meet the
// stake; anything above it is accepted and stays in the pool.
func (s *RaffleServiceImpl) Enter(ctx context.Context, account string, amount float64) (*models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.RafflePhaseOpen {
		return nil, fmt.Errorf("entries are closed while drawing: %w", ErrRoundNotOpen)
	}
	if amount < s.stakeAmount {
		return nil, fmt.Errorf("tendered %.2f, stake is %.2f: %w", amount, s.stakeAmount, ErrInsufficientStake)
	}

	s.players = append(s.players, account)
	s.pool += amount

	entry := &models.Entry{
		Account:   account,
		Amount:    amount,
		Position:  len(s.players) - 1,
		EnteredAt: s.now(),
	}

	s.publishLocked(models.RaffleEvent{
		Type:    models.RaffleEventEntered,
		Account: account,
		Amount:  amount,
		At:      entry.EnteredAt,
	})

	slog.Info("entry accepted", "account", account, "amount", amount, "position", entry.Position, "pool", s.pool)
	return entry, nil
}

// CheckDrawReady reports whether all gate conditions hold. It never
// mutates the round; a stale answer is harmless because StartDraw
// re-evaluates under the same lock.
func (s *RaffleServiceImpl) CheckDrawReady() (bool, models.UpkeepStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upkeepStatusLocked()
}

func (s *RaffleServiceImpl) upkeepStatusLocked() (bool, models.UpkeepStatus) {
	status := models.UpkeepStatus{
		Phase:        s.phase,
		Participants: len(s.players),
		PoolBalance:  s.pool,
		Elapsed:      s.now().Sub(s.poolStartedAt),
		Interval:     s.drawInterval,
	}
	// Elapsed must strictly exceed the interval
	status.Ready = s.phase == models.RafflePhaseOpen &&
		status.Elapsed > s.drawInterval &&
		status.Participants > 0 &&
		status.PoolBalance > 0

	return status.Ready, status
}

// StartDraw closes the round and asks the coordinator for randomness.
// Callers race freely: exactly one start succeeds per round, the rest get
// ErrRoundNotOpen or UpkeepNotNeededError.
func (s *RaffleServiceImpl) StartDraw(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.RafflePhaseOpen {
		return "", fmt.Errorf("draw already in flight: %w", ErrRoundNotOpen)
	}
	ready, status := s.upkeepStatusLocked()
	if !ready {
		return "", &UpkeepNotNeededError{Status: status}
	}

	s.phase = models.RafflePhaseDrawing

	// The lock stays held through this call: a fulfillment cannot arrive
	// before the handle below is recorded.
	requestID, err := s.coordinator.RequestRandomWords(ctx, s.vrfRequest)
	if err != nil {
		// No request exists, so the round reopens and the trigger retries later
		s.phase = models.RafflePhaseOpen
		slog.Error("randomness request failed, round reopened", "error", err)
		return "", fmt.Errorf("randomness request failed: %w", err)
	}
	s.pendingRequestID = requestID

	s.publishLocked(models.RaffleEvent{
		Type:         models.RaffleEventDrawRequested,
		RequestID:    requestID,
		Amount:       s.pool,
		Participants: len(s.players),
		At:           s.now(),
	})

	slog.Info("draw started", "requestId", requestID, "participants", len(s.players), "pool", s.pool)
	return requestID, nil
}

// FulfillRandomness consumes the coordinator callback. Exactly one
// fulfillment is accepted per request: anything with a stale or unknown
// handle, or arriving outside DRAWING, is rejected without mutation.
func (s *RaffleServiceImpl) FulfillRandomness(ctx context.Context, requestID string, randomWords []uint64) (*models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.RafflePhaseDrawing || s.pendingRequestID == "" || requestID != s.pendingRequestID {
		slog.Warn("rejected randomness fulfillment", "requestId", requestID, "phase", s.phase)
		return nil, fmt.Errorf("request %q: %w", requestID, ErrUnknownRequest)
	}
	if len(randomWords) == 0 {
		return nil, fmt.Errorf("request %q: %w", requestID, ErrNoRandomWords)
	}

	// Winner selection is word mod N. The low-index bias when 2^64 is not
	// a multiple of N is a known property of the scheme and is kept as is.
	index := int(randomWords[0] % uint64(len(s.players)))
	record := &models.WinnerRecord{
		Account:      s.players[index],
		Amount:       s.pool,
		RequestID:    requestID,
		Participants: len(s.players),
		WonAt:        s.now(),
	}

	// The request handle is consumed no matter what happens next: a
	// redelivered or forged callback must never re-randomize the round.
	s.pendingRequestID = ""

	return s.settleLocked(ctx, record, record.WonAt)
}

// settleLocked resets the round and then pays the winner. The reset comes
// first: the external transfer must only ever see a round that has already
// forgotten the concluded one. On transfer failure the round is restored
// to DRAWING with the winner parked for RetryPayout.
func (s *RaffleServiceImpl) settleLocked(ctx context.Context, record *models.WinnerRecord, poolStart time.Time) (*models.WinnerRecord, error) {
	prevPlayers := s.players
	prevPool := s.pool
	prevStarted := s.poolStartedAt

	s.phase = models.RafflePhaseOpen
	s.players = nil
	s.pool = 0
	s.poolStartedAt = poolStart
	s.pendingPayout = nil

	if err := s.treasury.Transfer(ctx, record.Account, record.Amount); err != nil {
		s.phase = models.RafflePhaseDrawing
		s.players = prevPlayers
		s.pool = prevPool
		s.poolStartedAt = prevStarted
		s.pendingPayout = record
		slog.Error("winner payout failed, round held for operator retry",
			"error", err, "account", record.Account, "amount", record.Amount, "requestId", record.RequestID)
		return nil, &PayoutError{Account: record.Account, Amount: record.Amount, Cause: err}
	}

	s.lastWinner = record

	s.publishLocked(models.RaffleEvent{
		Type:         models.RaffleEventWinnerPicked,
		Account:      record.Account,
		Amount:       record.Amount,
		RequestID:    record.RequestID,
		Participants: record.Participants,
		At:           record.WonAt,
	})

	slog.Info("winner picked", "account", record.Account, "amount", record.Amount,
		"participants", record.Participants, "requestId", record.RequestID)
	return record, nil
}

// RetryPayout re-attempts the transfer for the parked winner. The same
// account and amount are paid; the consumed random value is never reused,
// so at most one payout can ever succeed per request.
func (s *RaffleServiceImpl) RetryPayout(ctx context.Context) (*models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingPayout == nil {
		return nil, ErrNoPendingPayout
	}
	return s.settleLocked(ctx, s.pendingPayout, s.now())
}

// ForceReopen abandons the outstanding randomness request and reopens
// entries. Staked funds are the players' money: the participant list and
// pool carry over into the next draw. A late fulfillment for the
// abandoned request fails the handle check and mutates nothing.
func (s *RaffleServiceImpl) ForceReopen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.RafflePhaseDrawing {
		return ErrRoundNotDrawing
	}

	abandoned := s.pendingRequestID
	s.pendingRequestID = ""
	if s.pendingPayout != nil {
		slog.Warn("force reopen abandoning unpaid winner",
			"account", s.pendingPayout.Account, "amount", s.pendingPayout.Amount)
		s.pendingPayout = nil
	}
	s.phase = models.RafflePhaseOpen

	s.publishLocked(models.RaffleEvent{
		Type:         models.RaffleEventRoundReopened,
		RequestID:    abandoned,
		Amount:       s.pool,
		Participants: len(s.players),
		At:           s.now(),
	})

	slog.Warn("round force reopened", "abandonedRequestId", abandoned,
		"participants", len(s.players), "pool", s.pool)
	return nil
}

// Snapshot returns the read-only view of the round
func (s *RaffleServiceImpl) Snapshot() models.RaffleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.RaffleSnapshot{
		Phase:            s.phase,
		Participants:     len(s.players),
		PoolBalance:      s.pool,
		StakeAmount:      s.stakeAmount,
		DrawInterval:     s.drawInterval,
		PoolStartedAt:    s.poolStartedAt,
		PendingRequestID: s.pendingRequestID,
		PayoutPending:    s.pendingPayout != nil,
	}
	if s.lastWinner != nil {
		lw := *s.lastWinner
		snap.LastWinner = &lw
	}
	return snap
}

// ParticipantCount returns the number of entries in the current round
func (s *RaffleServiceImpl) ParticipantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// Participant returns the account at the given entry position
func (s *RaffleServiceImpl) Participant(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.players) {
		return "", fmt.Errorf("index %d with %d participants: %w", index, len(s.players), ErrIndexOutOfRange)
	}
	return s.players[index], nil
}

// LastWinner returns the most recently settled winner
func (s *RaffleServiceImpl) LastWinner() (*models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastWinner == nil {
		return nil, ErrNoWinnerYet
	}
	lw := *s.lastWinner
	return &lw, nil
}

// StakeAmount returns the fixed entry stake
func (s *RaffleServiceImpl) StakeAmount() float64 { return s.stakeAmount }

// DrawInterval returns the fixed time between draws
func (s *RaffleServiceImpl) DrawInterval() time.Duration { return s.drawInterval }

// PoolStartedAt returns when the current pool started accumulating
func (s *RaffleServiceImpl) PoolStartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poolStartedAt
}

// publishLocked emits an event while the round lock is held, so journal
// order matches operation order. Publish itself never blocks.
func (s *RaffleServiceImpl) publishLocked(event models.RaffleEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
