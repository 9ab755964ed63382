package protocols

import (
	"context"
	"sync"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
)

// MemoryRepository keeps protocols in a mutex-guarded map plus an
// insertion-ordered slice, so ListByOwner preserves creation order without
// relying on timestamp resolution.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*Protocol
	ordered []*Protocol
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Protocol)}
}

func cloneProtocol(p *Protocol) *Protocol {
	c := *p
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, protocol *Protocol) (*Protocol, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[protocol.ID]; ok {
		return nil, common.ErrAlreadyExists
	}

	stored := cloneProtocol(protocol)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.byID[stored.ID] = stored
	r.ordered = append(r.ordered, stored)

	return cloneProtocol(stored), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	protocol, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneProtocol(protocol), nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Protocol, 0)
	for _, p := range r.ordered {
		if p.OwnerID == ownerID {
			result = append(result, cloneProtocol(p))
		}
	}
	return result, nil
}
