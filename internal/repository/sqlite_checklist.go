package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: conn}
}

const checklistColumns = `id, activity_id, sort_order, label, completed, completed_at`

func (r *SQLiteChecklistRepo) Create(ctx context.Context, c *domain.ActivityChecklistItem) error {
	query := `INSERT INTO job_activity_checklists (` + checklistColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ActivityID,
		c.SortOrder,
		c.Label,
		boolToInt(c.Completed),
		nullableTimeToString(c.CompletedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) GetByID(ctx context.Context, id string) (*domain.ActivityChecklistItem, error) {
	query := `SELECT ` + checklistColumns + ` FROM job_activity_checklists WHERE id = ?`
	var c domain.ActivityChecklistItem
	var completedInt int
	var completedAtStr sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ActivityID, &c.SortOrder, &c.Label, &completedInt, &completedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("checklist item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning checklist item: %w", err)
	}
	c.Completed = intToBool(completedInt)
	c.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
	return &c, nil
}

func (r *SQLiteChecklistRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.ActivityChecklistItem, error) {
	query := `SELECT ` + checklistColumns + ` FROM job_activity_checklists
		WHERE activity_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ActivityChecklistItem
	for rows.Next() {
		var c domain.ActivityChecklistItem
		var completedInt int
		var completedAtStr sql.NullString
		err := rows.Scan(&c.ID, &c.ActivityID, &c.SortOrder, &c.Label, &completedInt, &completedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning checklist item row: %w", err)
		}
		c.Completed = intToBool(completedInt)
		c.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)
		items = append(items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return items, nil
}

func (r *SQLiteChecklistRepo) CountOpen(ctx context.Context, activityID string) (int, error) {
	query := `SELECT COUNT(*) FROM job_activity_checklists
		WHERE activity_id = ? AND completed = 0`
	var count int
	if err := r.db.QueryRowContext(ctx, query, activityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting open checklist items: %w", err)
	}
	return count, nil
}

func (r *SQLiteChecklistRepo) Complete(ctx context.Context, id string, completedAt time.Time) error {
	query := `UPDATE job_activity_checklists SET completed = 1, completed_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, completedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("completing checklist item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking completed rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("checklist item: %w", ErrNotFound)
	}
	return nil
}
