package ports

import (
	"context"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
)

// SessionStore persists portal sessions keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, sid string) (*domain.Session, error)
	Delete(ctx context.Context, sid string) error
}

// AuditRepository records portal activity for the audit trail.
type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}
