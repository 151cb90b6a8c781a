package models

import "time"

// ActivityEvent is one telemetry record emitted by the wizard.
type ActivityEvent struct {
	ID         string            `bson:"id" json:"id"`
	UserID     string            `bson:"userId" json:"userId"`
	DraftID    string            `bson:"draftId,omitempty" json:"draftId,omitempty"`
	Name       string            `bson:"name" json:"name"`
	Step       int               `bson:"step,omitempty" json:"step,omitempty"`
	Properties map[string]string `bson:"properties,omitempty" json:"properties,omitempty"`
	OccurredAt time.Time         `bson:"occurredAt" json:"occurredAt"`
}

// AuthSession identifies the caller. It is passed explicitly to every wizard
// operation instead of being read from ambient request state.
type AuthSession struct {
	UserID string
	Token  string
}
