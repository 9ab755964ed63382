package protocols

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, protocol *Protocol) (*Protocol, error) {

	query :=
		`INSERT INTO protocols (id, name, encryption_algorithm, key_length, authentication_method, bypass_security, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		protocol.ID, protocol.Name, protocol.EncryptionAlgorithm, protocol.KeyLength,
		protocol.AuthenticationMethod, protocol.BypassSecurity, protocol.OwnerID).
		Scan(&protocol.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return protocol, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Protocol, error) {

	query :=
		`SELECT id, name, encryption_algorithm, key_length, authentication_method, bypass_security, owner_id, created_at
		 FROM protocols
		 WHERE id = $1
		 `

	p := &Protocol{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.EncryptionAlgorithm, &p.KeyLength,
			&p.AuthenticationMethod, &p.BypassSecurity, &p.OwnerID, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Protocol, error) {

	query :=
		`SELECT id, name, encryption_algorithm, key_length, authentication_method, bypass_security, owner_id, created_at
		 FROM protocols
		 WHERE owner_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*Protocol, 0)
	for rows.Next() {
		p := &Protocol{}
		if err := rows.Scan(&p.ID, &p.Name, &p.EncryptionAlgorithm, &p.KeyLength,
			&p.AuthenticationMethod, &p.BypassSecurity, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
