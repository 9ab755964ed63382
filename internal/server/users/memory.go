package users

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"github.com/google/uuid"
)

// MemoryRepository is the default, process-local user store: a mutex-guarded
// map keyed by username. The uniqueness check and the insert share one
// critical section.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func cloneUser(u *User) *User {
	c := *u
	c.PasswordHash = bytes.Clone(u.PasswordHash)
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, common.ErrAlreadyExists
	}

	stored := cloneUser(user)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.users[user.Username] = stored

	return cloneUser(stored), nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneUser(user), nil
}
