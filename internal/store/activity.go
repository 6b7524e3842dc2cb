package store

import (
	"context"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type activityStore struct {
	q db.DBTX
}

func newActivityStore(q db.DBTX) ActivityStore {
	return &activityStore{q: q}
}

func (s *activityStore) Append(ctx context.Context, a *model.Activity) (bool, error) {
	payload := a.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	tag, err := s.q.Exec(ctx, `
		INSERT INTO activity_log (id, organization_id, actor_id, event_type, subject_id, stream_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stream_id) DO NOTHING`,
		a.ID, a.OrganizationID, a.ActorID, a.EventType, a.SubjectID, a.StreamID, []byte(payload),
	)
	if err != nil {
		return false, translate(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *activityStore) ListByOrganization(ctx context.Context, orgID int64, before *int64, limit int32) ([]model.Activity, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, organization_id, actor_id, event_type, subject_id, stream_id, payload, created_at
		FROM activity_log
		WHERE organization_id = $1 AND ($2::bigint IS NULL OR id < $2)
		ORDER BY id DESC
		LIMIT $3`, orgID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		var payload []byte
		if err := rows.Scan(&a.ID, &a.OrganizationID, &a.ActorID, &a.EventType, &a.SubjectID, &a.StreamID, &payload, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Payload = payload
		result = append(result, a)
	}
	return result, rows.Err()
}
