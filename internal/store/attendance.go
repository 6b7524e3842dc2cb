package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type attendanceStore struct {
	q db.DBTX
}

func newAttendanceStore(q db.DBTX) AttendanceStore {
	return &attendanceStore{q: q}
}

const attendanceColumns = `id, organization_id, user_id, work_date, status, check_in_at, check_out_at,
	work_minutes, note, leave_id, created_at, updated_at`

func (s *attendanceStore) GetByDay(ctx context.Context, orgID, userID int64, day time.Time) (*model.AttendanceRecord, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+attendanceColumns+` FROM attendance_records
		WHERE organization_id = $1 AND user_id = $2 AND work_date = $3`,
		orgID, userID, dateOnly(day))
	return scanAttendance(row)
}

func (s *attendanceStore) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO attendance_records (id, organization_id, user_id, work_date, status, check_in_at, note, leave_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+attendanceColumns,
		rec.ID, rec.OrganizationID, rec.UserID, dateOnly(rec.WorkDate), rec.Status, rec.CheckInAt, rec.Note, rec.LeaveID,
	)
	created, err := scanAttendance(row)
	if err != nil {
		return err
	}
	*rec = *created
	return nil
}

// CheckOut only closes a record that is still open, so a concurrent second
// check-out sees ErrNotFound instead of overwriting the first.
func (s *attendanceStore) CheckOut(ctx context.Context, rec *model.AttendanceRecord) error {
	row := s.q.QueryRow(ctx, `
		UPDATE attendance_records
		SET check_out_at = $2, work_minutes = $3, note = COALESCE($4, note), updated_at = now()
		WHERE id = $1 AND check_in_at IS NOT NULL AND check_out_at IS NULL
		RETURNING `+attendanceColumns,
		rec.ID, rec.CheckOutAt, rec.WorkMinutes, rec.Note,
	)
	updated, err := scanAttendance(row)
	if err != nil {
		return err
	}
	*rec = *updated
	return nil
}

func (s *attendanceStore) ListByUser(ctx context.Context, orgID, userID int64, from, to time.Time) ([]model.AttendanceRecord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+attendanceColumns+` FROM attendance_records
		WHERE organization_id = $1 AND user_id = $2 AND work_date BETWEEN $3 AND $4
		ORDER BY work_date DESC`,
		orgID, userID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (s *attendanceStore) ListByDay(ctx context.Context, orgID int64, day time.Time, userID *int64) ([]model.AttendanceRecord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+attendanceColumns+` FROM attendance_records
		WHERE organization_id = $1 AND work_date = $2 AND ($3::bigint IS NULL OR user_id = $3)
		ORDER BY check_in_at NULLS LAST, user_id`,
		orgID, dateOnly(day), userID)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (s *attendanceStore) Summarize(ctx context.Context, orgID int64, from, to time.Time) ([]model.AttendanceSummary, error) {
	rows, err := s.q.Query(ctx, `
		SELECT u.id, u.name,
		       COUNT(*) FILTER (WHERE a.status = 'present'),
		       COUNT(*) FILTER (WHERE a.status = 'late'),
		       COUNT(*) FILTER (WHERE a.status = 'on_leave'),
		       COALESCE(SUM(a.work_minutes), 0)
		FROM organization_members m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN attendance_records a
		       ON a.organization_id = m.organization_id
		      AND a.user_id = m.user_id
		      AND a.work_date BETWEEN $2 AND $3
		WHERE m.organization_id = $1 AND NOT u.is_deleted
		GROUP BY u.id, u.name
		ORDER BY u.name`,
		orgID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.AttendanceSummary{}
	for rows.Next() {
		var sum model.AttendanceSummary
		if err := rows.Scan(&sum.UserID, &sum.UserName, &sum.PresentDays, &sum.LateDays, &sum.OnLeaveDays, &sum.TotalMinutes); err != nil {
			return nil, err
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

func (s *attendanceStore) MarkOnLeave(ctx context.Context, orgID, userID, leaveID int64, days []time.Time, newID func() int64) (int, error) {
	inserted := 0
	for _, day := range days {
		tag, err := s.q.Exec(ctx, `
			INSERT INTO attendance_records (id, organization_id, user_id, work_date, status, leave_id)
			VALUES ($1, $2, $3, $4, 'on_leave', $5)
			ON CONFLICT (organization_id, user_id, work_date) DO NOTHING`,
			newID(), orgID, userID, dateOnly(day), leaveID)
		if err != nil {
			return inserted, translate(err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

func (s *attendanceStore) ClearLeave(ctx context.Context, leaveID int64) (int, error) {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM attendance_records
		WHERE leave_id = $1 AND status = 'on_leave' AND check_in_at IS NULL`, leaveID)
	if err != nil {
		return 0, translate(err)
	}
	return int(tag.RowsAffected()), nil
}

func collectAttendance(rows pgx.Rows) ([]model.AttendanceRecord, error) {
	defer rows.Close()

	result := []model.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

func scanAttendance(row scanner) (*model.AttendanceRecord, error) {
	var r model.AttendanceRecord
	if err := row.Scan(&r.ID, &r.OrganizationID, &r.UserID, &r.WorkDate, &r.Status, &r.CheckInAt, &r.CheckOutAt,
		&r.WorkMinutes, &r.Note, &r.LeaveID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// dateOnly strips the clock so DATE parameters never shift across zones.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
