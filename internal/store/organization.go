package store

import (
	"context"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type organizationStore struct {
	q db.DBTX
}

func newOrganizationStore(q db.DBTX) OrganizationStore {
	return &organizationStore{q: q}
}

const orgColumns = `o.id, o.owner_id, o.name, o.slug, o.description, o.is_deleted, o.created_at, o.updated_at`

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations o WHERE o.id = $1 AND NOT o.is_deleted`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations o WHERE o.slug = $1 AND NOT o.is_deleted`, slug)
	return scanOrganization(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organizations AS o (id, owner_id, name, slug, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orgColumns,
		org.ID, org.OwnerID, org.Name, org.Slug, org.Description,
	)
	created, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		UPDATE organizations AS o SET name = $2, description = $3, updated_at = now()
		WHERE o.id = $1 AND NOT o.is_deleted
		RETURNING `+orgColumns,
		org.ID, org.Name, org.Description,
	)
	updated, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE organizations SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND NOT is_deleted`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizationStore) ListByMember(ctx context.Context, userID int64) ([]model.Membership, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+orgColumns+`, m.role
		FROM organizations o
		JOIN organization_members m ON m.organization_id = o.id
		WHERE m.user_id = $1 AND NOT o.is_deleted
		ORDER BY o.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Membership{}
	for rows.Next() {
		var ms model.Membership
		o := &ms.Organization
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.Name, &o.Slug, &o.Description, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt, &ms.Role); err != nil {
			return nil, err
		}
		result = append(result, ms)
	}
	return result, rows.Err()
}

func scanOrganization(row scanner) (*model.Organization, error) {
	var o model.Organization
	if err := row.Scan(&o.ID, &o.OwnerID, &o.Name, &o.Slug, &o.Description, &o.IsDeleted, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &o, nil
}
