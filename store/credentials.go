package store

import (
	"context"

	"github.com/uptrace/bun"
)

// Credentials is the bun-backed repository for the auth_credentials table.
type Credentials struct {
	db bun.IDB
}

// NewCredentials creates a credentials repository.
func NewCredentials(db bun.IDB) *Credentials {
	return &Credentials{db: db}
}

// Create inserts the credential row.
func (r *Credentials) Create(ctx context.Context, cred *AuthCredential) error {
	_, err := r.db.NewInsert().
		Model(cred).
		Exec(ctx)
	return err
}

// EmailExists reports whether any credential row carries the email.
func (r *Credentials) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.db.NewSelect().
		Model((*AuthCredential)(nil)).
		Where("email = ?", email).
		Exists(ctx)
}

// GetByEmail returns the credential row for the email, or sql.ErrNoRows.
func (r *Credentials) GetByEmail(ctx context.Context, email string) (*AuthCredential, error) {
	var cred AuthCredential
	err := r.db.NewSelect().
		Model(&cred).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// DeleteByEmail removes the credential row during registration rollback.
func (r *Credentials) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.NewDelete().
		Model((*AuthCredential)(nil)).
		Where("email = ?", email).
		Exec(ctx)
	return err
}
