package memory

import (
	"context"
	"sync"

	"github.com/mavera/backoffice/internal/core/domain"
)

const defaultAuditCapacity = 1000

// AuditRepository is a bounded in-memory audit log. The oldest events are
// dropped once capacity is reached.
type AuditRepository struct {
	mu       sync.RWMutex
	events   []domain.AuditEvent
	capacity int
}

func NewAuditRepository(capacity int) *AuditRepository {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &AuditRepository{capacity: capacity}
}

func (r *AuditRepository) Insert(_ context.Context, e *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, *e)
	if over := len(r.events) - r.capacity; over > 0 {
		r.events = append(r.events[:0:0], r.events[over:]...)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *AuditRepository) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]domain.AuditEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
