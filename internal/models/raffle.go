package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RafflePhase represents the lifecycle phase of the current round
type RafflePhase string

const (
	RafflePhaseOpen    RafflePhase = "OPEN"
	RafflePhaseDrawing RafflePhase = "DRAWING"
)

// Entry represents a single accepted raffle entry
type Entry struct {
	Account   string    `json:"account"`
	Amount    float64   `json:"amount"`
	Position  int       `json:"position"` // zero-based index in the participant list
	EnteredAt time.Time `json:"enteredAt"`
}

// UpkeepStatus is the diagnostic snapshot returned by the draw-readiness
// check. Ready is true only when every gate condition holds.
type UpkeepStatus struct {
	Ready        bool          `json:"ready"`
	Phase        RafflePhase   `json:"phase"`
	Participants int           `json:"participants"`
	PoolBalance  float64       `json:"poolBalance"`
	Elapsed      time.Duration `json:"elapsed"`
	Interval     time.Duration `json:"interval"`
}

// WinnerRecord represents a settled round's winner
type WinnerRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Account      string             `bson:"account" json:"account"`
	Amount       float64            `bson:"amount" json:"amount"`
	RequestID    string             `bson:"requestId" json:"requestId"`
	Participants int                `bson:"participants" json:"participants"`
	WonAt        time.Time          `bson:"wonAt" json:"wonAt"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// RaffleSnapshot is the read-only view of the current round
type RaffleSnapshot struct {
	Phase            RafflePhase   `json:"phase"`
	Participants     int           `json:"participants"`
	PoolBalance      float64       `json:"poolBalance"`
	StakeAmount      float64       `json:"stakeAmount"`
	DrawInterval     time.Duration `json:"drawInterval"`
	PoolStartedAt    time.Time     `json:"poolStartedAt"`
	PendingRequestID string        `json:"pendingRequestId,omitempty"`
	PayoutPending    bool          `json:"payoutPending"`
	LastWinner       *WinnerRecord `json:"lastWinner,omitempty"`
}
