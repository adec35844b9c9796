package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun-backed repository for the users table.
type Users struct {
	db bun.IDB
}

// NewUsers creates a users repository.
func NewUsers(db bun.IDB) *Users {
	return &Users{db: db}
}

// Create inserts the user row. The caller owns the ID.
func (r *Users) Create(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)
	return err
}

// EmailExists reports whether any user row carries the email.
func (r *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
}

// GetByEmail returns the user row for the email, or sql.ErrNoRows.
func (r *Users) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.NewSelect().
		Model(&user).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user row for the id, or sql.ErrNoRows.
func (r *Users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetContextID backfills the context reference after the context row commits.
func (r *Users) SetContextID(ctx context.Context, userID, contextID uuid.UUID) error {
	res, err := r.db.NewUpdate().
		Model((*User)(nil)).
		Set("context_id = ?", contextID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByEmail removes the user row. Registration rollback keys on email
// because the row id may never have reached the caller.
func (r *Users) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.NewDelete().
		Model((*User)(nil)).
		Where("email = ?", email).
		Exec(ctx)
	return err
}
