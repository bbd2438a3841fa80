package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// SQLiteAuditRepo implements AuditRepo using a SQLite database.
type SQLiteAuditRepo struct {
	db db.DBTX
}

// NewSQLiteAuditRepo creates a new SQLiteAuditRepo.
func NewSQLiteAuditRepo(conn db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: conn}
}

func (r *SQLiteAuditRepo) Create(ctx context.Context, e *domain.AuditEvent) error {
	query := `INSERT INTO audit_logs (id, job_id, event_type, actor_id, actor_name, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.JobID,
		string(e.EventType),
		e.ActorID,
		e.ActorName,
		e.Detail,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.AuditEvent, error) {
	query := `SELECT id, job_id, event_type, actor_id, actor_name, detail, created_at
		FROM audit_logs WHERE job_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing audit events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		var eventTypeStr, createdAtStr string
		err := rows.Scan(&e.ID, &e.JobID, &eventTypeStr, &e.ActorID, &e.ActorName, &e.Detail, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		e.EventType = domain.AuditEventType(eventTypeStr)
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}
	return events, nil
}
