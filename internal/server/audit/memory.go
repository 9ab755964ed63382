package audit

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryRepository keeps the trail as an append-only slice under a mutex.
// Concurrent appends are safe; no total order is promised beyond the
// happens-before of each triggering request.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []*Event
	seq    int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func cloneEvent(e *Event) *Event {
	c := *e
	if e.Details != nil {
		c.Details = maps.Clone(e.Details)
	}
	return &c
}

func (r *MemoryRepository) Append(ctx context.Context, event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneEvent(event)
	r.seq++
	stored.Seq = r.seq
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	r.events = append(r.events, stored)

	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Event, 0)
	for _, e := range r.events {
		if e.UserID == userID {
			result = append(result, cloneEvent(e))
		}
	}
	return result, nil
}

func (r *MemoryRepository) ListAfter(ctx context.Context, seq int64) ([]*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Event, 0)
	for _, e := range r.events {
		if e.Seq > seq {
			result = append(result, cloneEvent(e))
		}
	}
	return result, nil
}
