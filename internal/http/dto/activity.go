package dto

import (
	"encoding/json"
	"time"

	"peoplehub.app/api/internal/model"
)

type ActivityQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Before *int64 `form:"before" binding:"omitempty,min=1"`
}

type ActivityResponse struct {
	ID        int64           `json:"id,string"`
	ActorID   int64           `json:"actor_id,string"`
	EventType string          `json:"event_type"`
	SubjectID int64           `json:"subject_id,string"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func ToActivityResponses(items []model.Activity) []*ActivityResponse {
	out := make([]*ActivityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, &ActivityResponse{
			ID:        a.ID,
			ActorID:   a.ActorID,
			EventType: a.EventType,
			SubjectID: a.SubjectID,
			Payload:   a.Payload,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}
