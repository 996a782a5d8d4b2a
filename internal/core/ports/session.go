package ports

import (
	"context"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// SessionStore persists Identity+Credential pairs under a durable key-value
// mechanism. Implementations must treat Delete as idempotent and must never
// return a partially populated session: a record that fails to decode is
// reported as domain.ErrNoSession.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService is the single writer of the portal's session state. No view
// mutates an Identity directly; these four operations are the only path.
type SessionService interface {
	// Login exchanges credentials with the backend. On success the session is
	// committed atomically (token and identity together, never one without
	// the other). On any failure nothing is stored.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Restore loads a previously persisted session by ID. Absent, expired or
	// malformed records settle to domain.ErrNoSession.
	Restore(ctx context.Context, id string) (*domain.Session, error)

	// Logout drops the session unconditionally. Safe to call when the
	// session is already gone.
	Logout(ctx context.Context, id string) error

	// Signup forwards registration to the backend without touching session
	// state; errors are propagated to the caller, not swallowed.
	Signup(ctx context.Context, in SignupInput) error
}
