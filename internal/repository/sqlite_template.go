package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// templateColumns is the canonical SELECT column list for activity_templates.
const templateColumns = `id, job_type_id, sort_order, name, stage, category,
		consultant, deliverable, phase, estimated_days,
		predecessor_sort_order, relationship, created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ActivityTemplate) error {
	query := `INSERT INTO activity_templates (id, job_type_id, sort_order, name, stage, category,
		consultant, deliverable, phase, estimated_days,
		predecessor_sort_order, relationship, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.JobTypeID,
		t.SortOrder,
		t.Name,
		t.Stage,
		t.Category,
		t.Consultant,
		t.Deliverable,
		t.Phase,
		t.EstimatedDays,
		nullableIntToValue(t.PredecessorSortOrder),
		relationshipToValue(t.Relationship),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.ActivityTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM activity_templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTemplate(row)
}

func (r *SQLiteTemplateRepo) ListByJobType(ctx context.Context, jobTypeID string) ([]*domain.ActivityTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM activity_templates
		WHERE job_type_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, jobTypeID)
	if err != nil {
		return nil, fmt.Errorf("listing activity templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.ActivityTemplate
	for rows.Next() {
		t, err := r.scanTemplateRow(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity templates: %w", err)
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.ActivityTemplate) error {
	query := `UPDATE activity_templates SET sort_order = ?, name = ?, stage = ?, category = ?,
		consultant = ?, deliverable = ?, phase = ?, estimated_days = ?,
		predecessor_sort_order = ?, relationship = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.SortOrder,
		t.Name,
		t.Stage,
		t.Category,
		t.Consultant,
		t.Deliverable,
		t.Phase,
		t.EstimatedDays,
		nullableIntToValue(t.PredecessorSortOrder),
		relationshipToValue(t.Relationship),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM activity_templates WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting activity template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) CreateSubtask(ctx context.Context, s *domain.TemplateSubtask) error {
	query := `INSERT INTO template_subtasks (id, template_id, sort_order, name, estimated_days)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.TemplateID, s.SortOrder, s.Name, s.EstimatedDays)
	if err != nil {
		return fmt.Errorf("inserting template subtask: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) ListSubtasks(ctx context.Context, templateID string) ([]*domain.TemplateSubtask, error) {
	query := `SELECT id, template_id, sort_order, name, estimated_days
		FROM template_subtasks WHERE template_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template subtasks: %w", err)
	}
	defer rows.Close()

	var subtasks []*domain.TemplateSubtask
	for rows.Next() {
		var s domain.TemplateSubtask
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.SortOrder, &s.Name, &s.EstimatedDays); err != nil {
			return nil, fmt.Errorf("scanning template subtask: %w", err)
		}
		subtasks = append(subtasks, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template subtasks: %w", err)
	}
	return subtasks, nil
}

func (r *SQLiteTemplateRepo) CreateChecklistItem(ctx context.Context, c *domain.TemplateChecklistItem) error {
	query := `INSERT INTO template_checklist_items (id, template_id, sort_order, label)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.TemplateID, c.SortOrder, c.Label)
	if err != nil {
		return fmt.Errorf("inserting template checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) ListChecklistItems(ctx context.Context, templateID string) ([]*domain.TemplateChecklistItem, error) {
	query := `SELECT id, template_id, sort_order, label
		FROM template_checklist_items WHERE template_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.TemplateChecklistItem
	for rows.Next() {
		var c domain.TemplateChecklistItem
		if err := rows.Scan(&c.ID, &c.TemplateID, &c.SortOrder, &c.Label); err != nil {
			return nil, fmt.Errorf("scanning template checklist item: %w", err)
		}
		items = append(items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template checklist items: %w", err)
	}
	return items, nil
}

// relationshipToValue converts a Relationship to a value suitable for SQLite
// storage; the empty relationship is stored as NULL.
func relationshipToValue(rel domain.Relationship) interface{} {
	if rel == "" {
		return nil
	}
	return string(rel)
}

// parseRelationship converts a nullable relationship column back to the enum.
func parseRelationship(s sql.NullString) domain.Relationship {
	if !s.Valid {
		return ""
	}
	return domain.Relationship(s.String)
}

func (r *SQLiteTemplateRepo) scanTemplate(row *sql.Row) (*domain.ActivityTemplate, error) {
	var t domain.ActivityTemplate
	var predecessor sql.NullInt64
	var relationship sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.JobTypeID, &t.SortOrder, &t.Name, &t.Stage, &t.Category,
		&t.Consultant, &t.Deliverable, &t.Phase, &t.EstimatedDays,
		&predecessor, &relationship, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning activity template: %w", err)
	}
	return r.populateTemplate(&t, predecessor, relationship, createdAtStr, updatedAtStr)
}

func (r *SQLiteTemplateRepo) scanTemplateRow(rows *sql.Rows) (*domain.ActivityTemplate, error) {
	var t domain.ActivityTemplate
	var predecessor sql.NullInt64
	var relationship sql.NullString
	var createdAtStr, updatedAtStr string

	err := rows.Scan(
		&t.ID, &t.JobTypeID, &t.SortOrder, &t.Name, &t.Stage, &t.Category,
		&t.Consultant, &t.Deliverable, &t.Phase, &t.EstimatedDays,
		&predecessor, &relationship, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning activity template row: %w", err)
	}
	return r.populateTemplate(&t, predecessor, relationship, createdAtStr, updatedAtStr)
}

func (r *SQLiteTemplateRepo) populateTemplate(
	t *domain.ActivityTemplate,
	predecessor sql.NullInt64,
	relationship sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.ActivityTemplate, error) {
	t.PredecessorSortOrder = parseNullableInt(predecessor)
	t.Relationship = parseRelationship(relationship)

	var err error
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return t, nil
}
