// Package audit implements the append-only security event trail. Every
// component appends to it; nothing may remove entries.
package audit

import (
	"context"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/logging"
)

// Service wraps the repository with the fire-and-forget append contract:
// a failing append is logged and swallowed, never failing the operation
// that triggered it.
type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("module", "audit")}
}

// Append records a security event. userID may be empty for unauthenticated
// failures.
func (s *Service) Append(ctx context.Context, eventType EventType, userID string, details map[string]any, sourceAddress string) {
	event := &Event{
		EventType:     eventType,
		UserID:        userID,
		Details:       details,
		SourceAddress: sourceAddress,
	}

	if err := s.repo.Append(ctx, event); err != nil {
		s.logger.Error(ctx, "audit append failed", "event_type", string(eventType), "error", err.Error())
		return
	}

	s.logger.Info(ctx, "security event",
		"event_type", string(eventType), "user_id", userID, "source", sourceAddress)
}

// QueryByUser returns the user's events in insertion order.
func (s *Service) QueryByUser(ctx context.Context, userID string) ([]*Event, error) {
	return s.repo.ListByUser(ctx, userID)
}
