package storage

import (
	"context"
	"database/sql"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/users"
)

type MemoryManager struct {
	users     users.Repository
	protocols protocols.Repository
	audit     audit.Repository
}

func (m *MemoryManager) Conn() *sql.DB {
	return nil
}

func (m *MemoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryManager) Protocols() protocols.Repository {
	return m.protocols
}

func (m *MemoryManager) Audit() audit.Repository {
	return m.audit
}

func NewMemoryManager() Manager {
	return &MemoryManager{
		users:     users.NewMemoryRepository(),
		protocols: protocols.NewMemoryRepository(),
		audit:     audit.NewMemoryRepository(),
	}
}
