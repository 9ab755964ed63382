package audit

import "context"

// Repository is an append-only event sink. Events are never mutated or
// deleted; both list operations return events in insertion order.
type Repository interface {
	Append(ctx context.Context, event *Event) error
	ListByUser(ctx context.Context, userID string) ([]*Event, error)

	// ListAfter returns events with Seq greater than seq, for the archiver.
	ListAfter(ctx context.Context, seq int64) ([]*Event, error)
}
