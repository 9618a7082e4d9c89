package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// EventStore persists feed events.
type EventStore interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*Event, int, error)
}

// EventPublisher pushes events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// Service records and serves the activity feed. Recording is best-effort:
// a storage or broker failure is logged and swallowed, never propagated to
// the ledger write that triggered it.
type Service struct {
	store     EventStore
	publisher EventPublisher
	logger    *slog.Logger
}

// NewService creates a new activity service. publisher may be nil when no
// broker is configured.
func NewService(store EventStore, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Record appends an event to the group's feed and publishes it to the
// broker. Failures are logged, not returned.
func (s *Service) Record(ctx context.Context, groupID, actorID int64, action, detail string) {
	event := &Event{
		EventID: uuid.NewString(),
		GroupID: groupID,
		ActorID: actorID,
		Action:  action,
		Detail:  detail,
	}

	stored, err := s.store.Create(ctx, event)
	if err != nil {
		s.logger.Error("failed to record activity event",
			"group_id", groupID, "action", action, "error", err)
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, stored); err != nil {
		s.logger.Warn("failed to publish activity event",
			"event_id", stored.EventID, "action", action, "error", err)
	}
}

// ListByGroup retrieves a page of a group's feed, newest first
func (s *Service) ListByGroup(ctx context.Context, groupID int64, page, perPage int) ([]*Event, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByGroup(ctx, groupID, perPage, offset)
}
