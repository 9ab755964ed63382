// Package storage selects and wires the repository backend: the default
// in-memory store or PostgreSQL when a DSN is configured.
package storage

import (
	"context"
	"database/sql"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/audit"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/protocols"
	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/server/users"
)

type Manager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Protocols() protocols.Repository
	Audit() audit.Repository
}
