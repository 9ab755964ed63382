package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, event *Event) error {

	details, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("details marshal error: %w", err)
	}

	query :=
		`INSERT INTO audit_events (event_type, user_id, details, source_address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING seq, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		string(event.EventType), event.UserID, details, event.SourceAddress).
		Scan(&event.Seq, &event.Timestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*Event, error) {

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*Event, 0)
	for rows.Next() {
		e := &Event{}
		var details []byte
		if err := rows.Scan(&e.Seq, &e.Timestamp, &e.EventType, &e.UserID, &details, &e.SourceAddress); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("details unmarshal error: %w", err)
			}
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Event, error) {
	query :=
		`SELECT seq, created_at, event_type, user_id, details, source_address
		 FROM audit_events
		 WHERE user_id = $1
		 ORDER BY seq
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListAfter(ctx context.Context, seq int64) ([]*Event, error) {
	query :=
		`SELECT seq, created_at, event_type, user_id, details, source_address
		 FROM audit_events
		 WHERE seq > $1
		 ORDER BY seq
		 `
	return r.list(ctx, query, seq)
}
