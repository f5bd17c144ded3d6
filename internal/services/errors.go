package services

import (
	"errors"
	"fmt"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
)

// Raffle error taxonomy. Handlers translate these to HTTP statuses;
// callers inside the service layer match with errors.Is / errors.As.
var (
	// ErrRoundNotOpen rejects entries and draw starts while a draw is in flight.
	ErrRoundNotOpen = errors.New("raffle round is not open")

	// ErrRoundNotDrawing rejects recovery actions that only make sense mid-draw.
	ErrRoundNotDrawing = errors.New("raffle round is not drawing")

	// ErrInsufficientStake rejects entries tendering less than the stake.
	ErrInsufficientStake = errors.New("insufficient stake")

	// ErrIndexOutOfRange rejects participant lookups past the end of the list.
	ErrIndexOutOfRange = errors.New("participant index out of range")

	// ErrUnknownRequest rejects fulfillments whose handle does not match the
	// one outstanding request. Stale, duplicate and forged callbacks all land here.
	ErrUnknownRequest = errors.New("unknown or stale randomness request")

	// ErrNoRandomWords rejects fulfillments that carry no random words.
	ErrNoRandomWords = errors.New("fulfillment carried no random words")

	// ErrUpkeepNotNeeded is the sentinel under UpkeepNotNeededError.
	ErrUpkeepNotNeeded = errors.New("upkeep not needed")

	// ErrPayoutTransferFailed is the sentinel under PayoutError.
	ErrPayoutTransferFailed = errors.New("payout transfer failed")

	// ErrNoPendingPayout rejects payout retries when nothing is owed.
	ErrNoPendingPayout = errors.New("no pending payout")

	// ErrNoWinnerYet is returned by winner queries before the first settlement.
	ErrNoWinnerYet = errors.New("no winner yet")
)

// UpkeepNotNeededError reports a draw start attempt whose gate conditions
// did not hold, carrying the full diagnostic snapshot.
type UpkeepNotNeededError struct {
	Status models.UpkeepStatus
}

func (e *UpkeepNotNeededError) Error() string {
	return fmt.Sprintf("upkeep not needed: phase=%s participants=%d pool=%.2f elapsed=%s interval=%s",
		e.Status.Phase, e.Status.Participants, e.Status.PoolBalance, e.Status.Elapsed, e.Status.Interval)
}

func (e *UpkeepNotNeededError) Unwrap() error { return ErrUpkeepNotNeeded }

// PayoutError reports a failed winner transfer. The round stays in DRAWING
// with the selected winner parked for an operator retry.
type PayoutError struct {
	Account string
	Amount  float64
	Cause   error
}

func (e *PayoutError) Error() string {
	return fmt.Sprintf("payout of %.2f to %s failed: %v", e.Amount, e.Account, e.Cause)
}

func (e *PayoutError) Unwrap() error { return ErrPayoutTransferFailed }
