package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// SQLiteJobRepo implements JobRepo using a SQLite database.
type SQLiteJobRepo struct {
	db db.DBTX
}

// NewSQLiteJobRepo creates a new SQLiteJobRepo.
func NewSQLiteJobRepo(conn db.DBTX) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: conn}
}

const jobColumns = `id, company_id, name, job_type_id, start_date, status, created_at, updated_at`

func (r *SQLiteJobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		j.ID,
		j.CompanyID,
		j.Name,
		nullableStrToValue(j.JobTypeID),
		nullableTimeToString(j.StartDate, dateLayout),
		string(j.Status),
		j.CreatedAt.Format(time.RFC3339),
		j.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) GetByID(ctx context.Context, companyID, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ? AND company_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, companyID)
	return r.scanJob(row)
}

func (r *SQLiteJobRepo) List(ctx context.Context, companyID string) ([]*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		var j domain.Job
		var jobTypeID, startDateStr sql.NullString
		var statusStr, createdAtStr, updatedAtStr string
		err := rows.Scan(&j.ID, &j.CompanyID, &j.Name, &jobTypeID, &startDateStr,
			&statusStr, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		if err := populateJob(&j, jobTypeID, startDateStr, statusStr, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		jobs = append(jobs, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

func (r *SQLiteJobRepo) Update(ctx context.Context, j *domain.Job) error {
	query := `UPDATE jobs SET name = ?, job_type_id = ?, start_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		j.Name,
		nullableStrToValue(j.JobTypeID),
		nullableTimeToString(j.StartDate, dateLayout),
		string(j.Status),
		j.UpdatedAt.Format(time.RFC3339),
		j.ID,
	)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}
	return nil
}

func (r *SQLiteJobRepo) scanJob(row *sql.Row) (*domain.Job, error) {
	var j domain.Job
	var jobTypeID, startDateStr sql.NullString
	var statusStr, createdAtStr, updatedAtStr string
	err := row.Scan(&j.ID, &j.CompanyID, &j.Name, &jobTypeID, &startDateStr,
		&statusStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job: %w", err)
	}
	if err := populateJob(&j, jobTypeID, startDateStr, statusStr, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &j, nil
}

func populateJob(j *domain.Job, jobTypeID, startDateStr sql.NullString, statusStr, createdAtStr, updatedAtStr string) error {
	j.JobTypeID = parseNullableStr(jobTypeID)
	j.StartDate = parseNullableTime(startDateStr, dateLayout)
	j.Status = domain.JobStatus(statusStr)

	var err error
	j.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	j.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
