package domain

import (
	"errors"
	"time"
)

const (
	RoleSales   = "Sales"
	RoleBackend = "Backend"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRoleNotAllowed = errors.New("role not allowed")
var ErrSessionNotFound = errors.New("session not found")
var ErrLoginInFlight = errors.New("login already in progress")
var ErrBackendUnavailable = errors.New("backend unavailable")
var ErrRecordNotFound = errors.New("record not found")

// RoleAllowed reports whether a backend-reported role may use the portal.
// Any role outside the allow-list is treated as unauthenticated.
func RoleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// User models the authenticated actor as reported by the backend.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session is the portal's belief that a user is authenticated. It exists only
// between a successful login (or session probe) and logout, and carries the
// ambient upstream credential forwarded on every backend call.
type Session struct {
	SID            string    `json:"sid"`
	User           User      `json:"user"`
	UpstreamCookie string    `json:"upstream_cookie"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
