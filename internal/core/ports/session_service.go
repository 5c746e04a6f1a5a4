package ports

import (
	"context"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// SessionService owns the login/logout lifecycle. The portal is LoggedIn for a
// browser exactly while a session exists in the store for its cookie's sid.
type SessionService interface {
	// Probe resolves an existing sid against the store and re-validates it
	// against the backend's who-am-I endpoint. Any failure, including a
	// transport error, resolves to ErrSessionNotFound: probing degrades to
	// "show login", it never surfaces an error page.
	Probe(ctx context.Context, sid string) (*domain.Session, error)

	// Login authenticates against the backend and establishes a session.
	// The returned token is the signed session cookie value.
	Login(ctx context.Context, username, password string) (*domain.Session, string, error)

	// Logout tears the session down locally after a best-effort backend
	// notification. It always succeeds locally.
	Logout(ctx context.Context, sid string)

	// Resolve loads a live session without touching the backend. Used by
	// request middleware and the poller.
	Resolve(ctx context.Context, sid string) (*domain.Session, error)

	// ParseToken validates a signed session cookie value and returns its sid.
	ParseToken(token string) (string, error)
}
