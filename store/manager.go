package store

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories over one bun handle.
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() *Users
	Credentials() *Credentials
	Contexts() *Contexts
	Catalog() *Catalog
}

type mngr struct {
	db          *bun.DB
	users       *Users
	credentials *Credentials
	contexts    *Contexts
	catalog     *Catalog
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:          db,
		users:       NewUsers(db),
		credentials: NewCredentials(db),
		contexts:    NewContexts(db),
		catalog:     NewCatalog(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.credentials == nil {
		return errors.New("repository credentials should be initialized")
	}

	if m.contexts == nil {
		return errors.New("repository contexts should be initialized")
	}

	if m.catalog == nil {
		return errors.New("repository catalog should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() *Users {
	return m.users
}

func (m mngr) Credentials() *Credentials {
	return m.credentials
}

func (m mngr) Contexts() *Contexts {
	return m.contexts
}

func (m mngr) Catalog() *Catalog {
	return m.catalog
}
