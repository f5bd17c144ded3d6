package keeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/services"
)

// Keeper is the in-process automation trigger. It polls the draw gate on
// a ticker and starts the draw when the gate is open. Several keepers and
// external trigger callers may race: losing a race is an expected outcome,
// not an error.
type Keeper struct {
	raffle   services.RaffleService
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Keeper polling at the given interval
func New(raffle services.RaffleService, interval time.Duration) *Keeper {
	return &Keeper{
		raffle:   raffle,
		interval: interval,
	}
}

// Start launches the poll loop
func (k *Keeper) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.running {
		return errors.New("keeper already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	k.running = true

	k.wg.Add(1)
	go k.loop(ctx)

	slog.Info("keeper started", "pollInterval", k.interval)
	return nil
}

// Stop halts the poll loop and waits for it to exit
func (k *Keeper) Stop() {
	k.mu.Lock()
	if !k.running {
		k.mu.Unlock()
		return
	}
	k.running = false
	cancel := k.cancel
	k.mu.Unlock()

	cancel()
	k.wg.Wait()
	slog.Info("keeper stopped")
}

func (k *Keeper) loop(ctx context.Context) {
	defer k.wg.Done()

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.tick(ctx)
		}
	}
}

func (k *Keeper) tick(ctx context.Context) {
	ready, status := k.raffle.CheckDrawReady()
	if !ready {
		slog.Debug("upkeep not needed",
			"phase", status.Phase, "participants", status.Participants,
			"pool", status.PoolBalance, "elapsed", status.Elapsed)
		return
	}

	requestID, err := k.raffle.StartDraw(ctx)
	if err != nil {
		// Losing the race to another trigger is the normal case here
		if errors.Is(err, services.ErrRoundNotOpen) || errors.Is(err, services.ErrUpkeepNotNeeded) {
			slog.Debug("draw already handled elsewhere", "error", err)
			return
		}
		slog.Error("keeper failed to start draw", "error", err)
		return
	}

	slog.Info("keeper started draw", "requestId", requestID)
}
