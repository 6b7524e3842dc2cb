package store

import (
	"context"

	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/model"
)

type userStore struct {
	q db.DBTX
}

func newUserStore(q db.DBTX) UserStore {
	return &userStore{q: q}
}

const userColumns = `id, name, email, password_hash, is_deleted, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND NOT is_deleted`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND NOT is_deleted`, email)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.ID, user.Name, user.Email, user.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1 AND NOT is_deleted`, id, passwordHash)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
