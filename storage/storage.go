// Package storage holds the repositories behind the content document, the
// user table and the session store. Each has a PostgreSQL and an in-memory
// implementation.
package storage

import (
	"context"
	"errors"
	"time"

	"cafe-site/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrCorrupt        = errors.New("stored document does not parse")
)

// ContentKey is the fixed key the café document is stored under.
const ContentKey = "cafeData"

type ContentRepository interface {
	// Get returns ErrNotFound when no document was saved yet.
	Get(ctx context.Context) (*models.CafeData, error)
	Replace(ctx context.Context, data *models.CafeData) error
	Delete(ctx context.Context) error
}

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, handle string) (*models.Session, error)
	Delete(ctx context.Context, handle string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store bundles the three repositories of one backend.
type Store struct {
	Content  ContentRepository
	Users    UserRepository
	Sessions SessionRepository
}
