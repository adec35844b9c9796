package store

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Open connects to the SQLite database at dsn and returns the bun handle.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates every table the server uses. The unique email columns
// on users and auth_credentials are the backstop for concurrent registrations
// racing past the application-level uniqueness checks.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*AuthCredential)(nil),
		(*Context)(nil),
		(*Category)(nil),
		(*Course)(nil),
		(*QuizType)(nil),
		(*Quiz)(nil),
		(*Question)(nil),
		(*QuizAttempt)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
