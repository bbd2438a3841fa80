package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// activityColumns is the canonical SELECT column list for job_activities.
const activityColumns = `id, job_id, template_id, parent_id, sort_order,
		name, stage, category, consultant, deliverable, phase,
		estimated_days, predecessor_sort_order, relationship,
		start_date, end_date, status, created_at, updated_at`

// activityColumnsAliased is the same column list prefixed with "a." for join queries.
const activityColumnsAliased = `a.id, a.job_id, a.template_id, a.parent_id, a.sort_order,
		a.name, a.stage, a.category, a.consultant, a.deliverable, a.phase,
		a.estimated_days, a.predecessor_sort_order, a.relationship,
		a.start_date, a.end_date, a.status, a.created_at, a.updated_at`

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.JobActivity) error {
	query := `INSERT INTO job_activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.JobID,
		nullableStrToValue(a.TemplateID),
		nullableStrToValue(a.ParentID),
		a.SortOrder,
		a.Name,
		a.Stage,
		a.Category,
		a.Consultant,
		a.Deliverable,
		a.Phase,
		a.EstimatedDays,
		nullableIntToValue(a.PredecessorSortOrder),
		relationshipToValue(a.Relationship),
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		string(a.Status),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job activity: %w", err)
	}
	return nil
}

// GetByID resolves an activity through its job's company scope: another
// tenant's activity is indistinguishable from a missing one.
func (r *SQLiteActivityRepo) GetByID(ctx context.Context, companyID, id string) (*domain.JobActivity, error) {
	query := `SELECT ` + activityColumnsAliased + `
		FROM job_activities a
		JOIN jobs j ON a.job_id = j.id
		WHERE a.id = ? AND j.company_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, companyID)
	return r.scanActivity(row)
}

func (r *SQLiteActivityRepo) ListByJob(ctx context.Context, jobID string) ([]*domain.JobActivity, error) {
	query := `SELECT ` + activityColumns + ` FROM job_activities
		WHERE job_id = ? ORDER BY parent_id IS NOT NULL, sort_order`
	return r.queryActivities(ctx, query, jobID)
}

func (r *SQLiteActivityRepo) ListTopLevelByJob(ctx context.Context, jobID string) ([]*domain.JobActivity, error) {
	query := `SELECT ` + activityColumns + ` FROM job_activities
		WHERE job_id = ? AND parent_id IS NULL ORDER BY sort_order`
	return r.queryActivities(ctx, query, jobID)
}

func (r *SQLiteActivityRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.JobActivity, error) {
	query := `SELECT ` + activityColumns + ` FROM job_activities
		WHERE parent_id = ? ORDER BY sort_order`
	return r.queryActivities(ctx, query, parentID)
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.JobActivity) error {
	query := `UPDATE job_activities SET sort_order = ?, name = ?, stage = ?, category = ?,
		consultant = ?, deliverable = ?, phase = ?, estimated_days = ?,
		predecessor_sort_order = ?, relationship = ?, start_date = ?, end_date = ?,
		status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.SortOrder,
		a.Name,
		a.Stage,
		a.Category,
		a.Consultant,
		a.Deliverable,
		a.Phase,
		a.EstimatedDays,
		nullableIntToValue(a.PredecessorSortOrder),
		relationshipToValue(a.Relationship),
		nullableTimeToString(a.StartDate, dateLayout),
		nullableTimeToString(a.EndDate, dateLayout),
		string(a.Status),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) UpdateDates(ctx context.Context, id string, start, end *time.Time, updatedAt time.Time) error {
	query := `UPDATE job_activities SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(start, dateLayout),
		nullableTimeToString(end, dateLayout),
		updatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating job activity dates: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) UpdatePredecessor(ctx context.Context, id string, predecessorSortOrder *int, relationship domain.Relationship, updatedAt time.Time) error {
	query := `UPDATE job_activities SET predecessor_sort_order = ?, relationship = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableIntToValue(predecessorSortOrder),
		relationshipToValue(relationship),
		updatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating job activity predecessor: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM job_activities WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting job activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) queryActivities(ctx context.Context, query string, args ...any) ([]*domain.JobActivity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing job activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.JobActivity
	for rows.Next() {
		a, err := r.scanActivityRow(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) scanActivity(row *sql.Row) (*domain.JobActivity, error) {
	var a domain.JobActivity
	var templateID, parentID, relationship, startDateStr, endDateStr sql.NullString
	var predecessor sql.NullInt64
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&a.ID, &a.JobID, &templateID, &parentID, &a.SortOrder,
		&a.Name, &a.Stage, &a.Category, &a.Consultant, &a.Deliverable, &a.Phase,
		&a.EstimatedDays, &predecessor, &relationship,
		&startDateStr, &endDateStr, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job activity: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job activity: %w", err)
	}
	return populateActivity(&a, templateID, parentID, predecessor, relationship,
		startDateStr, endDateStr, statusStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteActivityRepo) scanActivityRow(rows *sql.Rows) (*domain.JobActivity, error) {
	var a domain.JobActivity
	var templateID, parentID, relationship, startDateStr, endDateStr sql.NullString
	var predecessor sql.NullInt64
	var statusStr, createdAtStr, updatedAtStr string

	err := rows.Scan(
		&a.ID, &a.JobID, &templateID, &parentID, &a.SortOrder,
		&a.Name, &a.Stage, &a.Category, &a.Consultant, &a.Deliverable, &a.Phase,
		&a.EstimatedDays, &predecessor, &relationship,
		&startDateStr, &endDateStr, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning job activity row: %w", err)
	}
	return populateActivity(&a, templateID, parentID, predecessor, relationship,
		startDateStr, endDateStr, statusStr, createdAtStr, updatedAtStr)
}

func populateActivity(
	a *domain.JobActivity,
	templateID, parentID sql.NullString,
	predecessor sql.NullInt64,
	relationship, startDateStr, endDateStr sql.NullString,
	statusStr, createdAtStr, updatedAtStr string,
) (*domain.JobActivity, error) {
	a.TemplateID = parseNullableStr(templateID)
	a.ParentID = parseNullableStr(parentID)
	a.PredecessorSortOrder = parseNullableInt(predecessor)
	a.Relationship = parseRelationship(relationship)
	a.StartDate = parseNullableTime(startDateStr, dateLayout)
	a.EndDate = parseNullableTime(endDateStr, dateLayout)
	a.Status = domain.ActivityStatus(statusStr)

	var err error
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return a, nil
}
