package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RaffleEventType string

const (
	RaffleEventEntered       RaffleEventType = "ENTERED"
	RaffleEventDrawRequested RaffleEventType = "DRAW_REQUESTED"
	RaffleEventWinnerPicked  RaffleEventType = "WINNER_PICKED"
	RaffleEventRoundReopened RaffleEventType = "ROUND_REOPENED"
)

// RaffleEvent is a journal entry describing one observable round
// transition. Events are observability output only; the round never
// reads them back.
type RaffleEvent struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type         RaffleEventType    `json:"type" bson:"type"`
	Account      string             `json:"account,omitempty" bson:"account,omitempty"`
	Amount       float64            `json:"amount,omitempty" bson:"amount,omitempty"`
	RequestID    string             `json:"requestId,omitempty" bson:"request_id,omitempty"`
	Participants int                `json:"participants,omitempty" bson:"participants,omitempty"`
	At           time.Time          `json:"at" bson:"at"`
}

// NewRaffleEvent creates an event stamped with the current time
func NewRaffleEvent(t RaffleEventType) RaffleEvent {
	return RaffleEvent{
		Type: t,
		At:   time.Now(),
	}
}
