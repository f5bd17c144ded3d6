package services

import (
	"context"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
)

// RaffleService defines the interface for the recurring raffle round.
// Every operation is atomic with respect to every other one; callers may
// race freely.
type RaffleService interface {
	// Enter records a stake and appends the account to the participant list
	Enter(ctx context.Context, account string, amount float64) (*models.Entry, error)

	// CheckDrawReady reports whether a draw could start now. Advisory only:
	// StartDraw re-evaluates under the round lock.
	CheckDrawReady() (bool, models.UpkeepStatus)

	// StartDraw closes entries and requests randomness, returning the request ID
	StartDraw(ctx context.Context) (string, error)

	// FulfillRandomness consumes the oracle callback, settles the round and
	// pays the winner
	FulfillRandomness(ctx context.Context, requestID string, randomWords []uint64) (*models.WinnerRecord, error)

	// RetryPayout re-attempts the transfer for a winner whose payout failed
	RetryPayout(ctx context.Context) (*models.WinnerRecord, error)

	// ForceReopen abandons an outstanding randomness request and reopens
	// entries, keeping staked funds in the pool
	ForceReopen(ctx context.Context) error

	// Snapshot returns the full read-only view of the round
	Snapshot() models.RaffleSnapshot

	// ParticipantCount returns the number of entries in the current round
	ParticipantCount() int

	// Participant returns the account at the given entry position
	Participant(index int) (string, error)

	// LastWinner returns the most recently settled winner
	LastWinner() (*models.WinnerRecord, error)

	// StakeAmount returns the fixed entry stake
	StakeAmount() float64

	// DrawInterval returns the fixed time between draws
	DrawInterval() time.Duration

	// PoolStartedAt returns when the current pool started accumulating
	PoolStartedAt() time.Time
}

// AuthService defines the interface for operator authentication
type AuthService interface {
	// Login verifies operator credentials and returns a signed session token
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}
