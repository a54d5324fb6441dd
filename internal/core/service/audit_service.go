package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mavera/backoffice/internal/core/domain"
	"github.com/mavera/backoffice/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditService persists and lists access audit events.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Persist writes a single event. Called by the audit dispatcher workers.
func (s *AuditService) Persist(ctx context.Context, e domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &e); err != nil {
		return fmt.Errorf("persist audit event: %w", err)
	}
	s.log.Debug().
		Str("action", string(e.Action)).
		Str("actor_id", e.ActorID).
		Msg("audit event stored")
	return nil
}

// Recent lists the newest events. limit defaults to 50 and is capped at 200.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	events, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
