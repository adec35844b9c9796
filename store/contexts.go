package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Contexts is the bun-backed repository for the contexts table.
type Contexts struct {
	db bun.IDB
}

// NewContexts creates a contexts repository.
func NewContexts(db bun.IDB) *Contexts {
	return &Contexts{db: db}
}

// Create inserts a context row. Rollback never deletes these rows, so a
// failure later in registration can leave one orphaned.
func (r *Contexts) Create(ctx context.Context, row *Context) error {
	_, err := r.db.NewInsert().
		Model(row).
		Exec(ctx)
	return err
}

// GetByInstance returns the context row scoping the given instance, or
// sql.ErrNoRows.
func (r *Contexts) GetByInstance(ctx context.Context, instanceID uuid.UUID) (*Context, error) {
	var row Context
	err := r.db.NewSelect().
		Model(&row).
		Where("instanceid = ?", instanceID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CountByInstance reports how many context rows reference the instance.
func (r *Contexts) CountByInstance(ctx context.Context, instanceID uuid.UUID) (int, error) {
	return r.db.NewSelect().
		Model((*Context)(nil)).
		Where("instanceid = ?", instanceID).
		Count(ctx)
}
