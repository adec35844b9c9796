package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserContextLevel is the context level recorded for user-scoped contexts.
const UserContextLevel = 2

// User is an LMS account holder. ContextID stays nil until the registration
// workflow backfills it after the context row commits.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Email     string     `bun:"email,notnull,unique" json:"email"`
	PhoneNo   string     `bun:"phone_no" json:"phone_no"`
	Password  string     `bun:"password,notnull" json:"-"`
	ContextID *uuid.UUID `bun:"context_id,type:uuid" json:"context_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// AuthCredential is the login row paired one-to-one with a User. The login
// response echoes this row to the client, hash included, so the JSON tags
// expose every column the way the historical API did.
type AuthCredential struct {
	bun.BaseModel `bun:"table:auth_credentials,alias:ac"`

	ID       uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	Email    string    `bun:"email,notnull,unique" json:"email"`
	Password string    `bun:"password,notnull" json:"password"`
	UserID   uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
}

// Context is the enrollment-scoping row created for each user. It is never
// deleted by registration rollback; a failed backfill orphans it.
type Context struct {
	bun.BaseModel `bun:"table:contexts,alias:ctx"`

	ID           uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id"`
	ContextLevel int       `bun:"contextlevel,notnull" json:"contextlevel"`
	InstanceID   uuid.UUID `bun:"instanceid,notnull,type:uuid" json:"instanceid"`
}
