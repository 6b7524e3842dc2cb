package model

import (
	"encoding/json"
	"time"
)

// Activity is one processed domain event, kept as the organization's audit trail.
type Activity struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organization_id"`
	ActorID        int64           `json:"actor_id"`
	EventType      string          `json:"event_type"`
	SubjectID      int64           `json:"subject_id"`
	StreamID       string          `json:"-"`
	Payload        json.RawMessage `json:"payload"`
	CreatedAt      time.Time       `json:"created_at"`
}
