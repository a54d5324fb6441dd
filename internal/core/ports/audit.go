package ports

import (
	"context"

	"github.com/mavera/backoffice/internal/core/domain"
)

// AuditRepository persists the access audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

// AuditRecorder accepts audit events for asynchronous persistence.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditPersister stores a single audit event synchronously.
type AuditPersister interface {
	Persist(ctx context.Context, event domain.AuditEvent) error
}

// AuditQuery lists the stored audit trail.
type AuditQuery interface {
	Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
