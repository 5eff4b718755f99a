package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"availability/internal/db"
	"github.com/lib/pq"
)

// AuditRepository writes the submission_log table.
type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// EnsureSchema creates submission_log if it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS submission_log (
			id            UUID PRIMARY KEY,
			request_id    BIGINT NOT NULL,
			request_group TEXT NOT NULL,
			person        TEXT NOT NULL,
			span_seconds  DOUBLE PRECISION NOT NULL,
			slot_count    INTEGER NOT NULL,
			submitted_at  TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("error creating submission_log: %w", err)
	}
	return nil
}

func (r *AuditRepository) Insert(ctx context.Context, l *db.SubmissionLog) error {
	query := `
		INSERT INTO submission_log
		(id, request_id, request_group, person, span_seconds, slot_count, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.RequestID, l.RequestGroup, l.Person, l.SpanSeconds, l.SlotCount, l.SubmittedAt)
	if err != nil {
		return fmt.Errorf("error inserting submission log: %w", err)
	}
	return nil
}

// LastSubmittedAt returns the latest submission time per request id. Requests
// never submitted are absent from the map.
func (r *AuditRepository) LastSubmittedAt(ctx context.Context, requestIDs []int64) (map[int64]time.Time, error) {
	out := map[int64]time.Time{}
	if len(requestIDs) == 0 {
		return out, nil
	}
	query := `SELECT request_id, MAX(submitted_at) FROM submission_log WHERE request_id = ANY($1) GROUP BY request_id`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(requestIDs))
	if err != nil {
		return nil, fmt.Errorf("error querying submission log: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("error scanning submission log: %w", err)
		}
		out[id] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating submission log: %w", err)
	}
	return out, nil
}
