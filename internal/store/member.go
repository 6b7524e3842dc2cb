package store

import (
	"context"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type memberStore struct {
	q db.DBTX
}

func newMemberStore(q db.DBTX) MemberStore {
	return &memberStore{q: q}
}

const memberColumns = `organization_id, user_id, role, department, designation, joined_at, updated_at`

func (s *memberStore) Get(ctx context.Context, orgID, userID int64) (*model.Member, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+memberColumns+` FROM organization_members
		WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	return scanMember(row)
}

func (s *memberStore) Add(ctx context.Context, m *model.Member) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organization_members (organization_id, user_id, role, department, designation)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+memberColumns,
		m.OrganizationID, m.UserID, m.Role, m.Department, m.Designation,
	)
	created, err := scanMember(row)
	if err != nil {
		return err
	}
	*m = *created
	return nil
}

func (s *memberStore) Update(ctx context.Context, m *model.Member) error {
	row := s.q.QueryRow(ctx, `
		UPDATE organization_members
		SET role = $3, department = $4, designation = $5, updated_at = now()
		WHERE organization_id = $1 AND user_id = $2
		RETURNING `+memberColumns,
		m.OrganizationID, m.UserID, m.Role, m.Department, m.Designation,
	)
	updated, err := scanMember(row)
	if err != nil {
		return err
	}
	*m = *updated
	return nil
}

func (s *memberStore) Remove(ctx context.Context, orgID, userID int64) error {
	tag, err := s.q.Exec(ctx, `
		DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *memberStore) List(ctx context.Context, orgID int64) ([]model.Member, error) {
	rows, err := s.q.Query(ctx, `
		SELECT m.organization_id, m.user_id, m.role, m.department, m.designation, m.joined_at, m.updated_at,
		       u.name, u.email
		FROM organization_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1 AND NOT u.is_deleted
		ORDER BY u.name`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Member{}
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.Department, &m.Designation,
			&m.JoinedAt, &m.UpdatedAt, &m.UserName, &m.UserEmail); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func scanMember(row scanner) (*model.Member, error) {
	var m model.Member
	if err := row.Scan(&m.OrganizationID, &m.UserID, &m.Role, &m.Department, &m.Designation, &m.JoinedAt, &m.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}
