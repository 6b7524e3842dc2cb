package store

import (
	"context"
	"time"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type leaveStore struct {
	q db.DBTX
}

func newLeaveStore(q db.DBTX) LeaveStore {
	return &leaveStore{q: q}
}

const leaveColumns = `id, organization_id, user_id, leave_type, start_date, end_date, days, reason, status,
	reviewer_id, review_comment, reviewed_at, created_at, updated_at`

func (s *leaveStore) GetByID(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	row := s.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id)
	return scanLeave(row)
}

func (s *leaveStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	row := s.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1 FOR UPDATE`, id)
	return scanLeave(row)
}

func (s *leaveStore) Create(ctx context.Context, l *model.LeaveRequest) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO leave_requests (id, organization_id, user_id, leave_type, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leaveColumns,
		l.ID, l.OrganizationID, l.UserID, l.Type, dateOnly(l.StartDate), dateOnly(l.EndDate), l.Days, l.Reason, l.Status,
	)
	created, err := scanLeave(row)
	if err != nil {
		return err
	}
	*l = *created
	return nil
}

func (s *leaveStore) UpdateStatus(ctx context.Context, l *model.LeaveRequest, from ...model.LeaveStatus) error {
	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}

	row := s.q.QueryRow(ctx, `
		UPDATE leave_requests
		SET status = $2, reviewer_id = $3, review_comment = $4, reviewed_at = $5, updated_at = now()
		WHERE id = $1 AND status = ANY($6)
		RETURNING `+leaveColumns,
		l.ID, l.Status, l.ReviewerID, l.ReviewComment, l.ReviewedAt, allowed,
	)
	updated, err := scanLeave(row)
	if err != nil {
		return err
	}
	*l = *updated
	return nil
}

func (s *leaveStore) HasOverlap(ctx context.Context, orgID, userID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE organization_id = $1 AND user_id = $2
			  AND status IN ('pending', 'approved')
			  AND start_date <= $4 AND end_date >= $3
		)`, orgID, userID, dateOnly(start), dateOnly(end)).Scan(&exists)
	return exists, err
}

func (s *leaveStore) List(ctx context.Context, f LeaveFilter) ([]model.LeaveRequest, error) {
	var status *string
	if f.Status != nil {
		st := string(*f.Status)
		status = &st
	}

	rows, err := s.q.Query(ctx, `
		SELECT `+leaveColumns+` FROM leave_requests
		WHERE organization_id = $1
		  AND ($2::bigint IS NULL OR user_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY start_date DESC, id DESC`,
		f.OrganizationID, f.UserID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.LeaveRequest{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	return result, rows.Err()
}

func scanLeave(row scanner) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	if err := row.Scan(&l.ID, &l.OrganizationID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.Reason,
		&l.Status, &l.ReviewerID, &l.ReviewComment, &l.ReviewedAt, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &l, nil
}
