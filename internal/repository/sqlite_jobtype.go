package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
)

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db db.DBTX
}

// NewSQLiteCompanyRepo creates a new SQLiteCompanyRepo.
func NewSQLiteCompanyRepo(conn db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: conn}
}

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	query := `INSERT INTO companies (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT id, name, created_at FROM companies WHERE id = ?`
	var c domain.Company
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT id, name, created_at FROM companies WHERE name = ?`
	var c domain.Company
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("company: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

// SQLiteJobTypeRepo implements JobTypeRepo using a SQLite database.
type SQLiteJobTypeRepo struct {
	db db.DBTX
}

// NewSQLiteJobTypeRepo creates a new SQLiteJobTypeRepo.
func NewSQLiteJobTypeRepo(conn db.DBTX) *SQLiteJobTypeRepo {
	return &SQLiteJobTypeRepo{db: conn}
}

func (r *SQLiteJobTypeRepo) Create(ctx context.Context, jt *domain.JobType) error {
	query := `INSERT INTO job_types (id, company_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		jt.ID,
		jt.CompanyID,
		jt.Name,
		jt.CreatedAt.Format(time.RFC3339),
		jt.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting job type: %w", err)
	}
	return nil
}

func (r *SQLiteJobTypeRepo) GetByID(ctx context.Context, companyID, id string) (*domain.JobType, error) {
	query := `SELECT id, company_id, name, created_at, updated_at
		FROM job_types WHERE id = ? AND company_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, companyID)
	return r.scanJobType(row)
}

func (r *SQLiteJobTypeRepo) List(ctx context.Context, companyID string) ([]*domain.JobType, error) {
	query := `SELECT id, company_id, name, created_at, updated_at
		FROM job_types WHERE company_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing job types: %w", err)
	}
	defer rows.Close()

	var jobTypes []*domain.JobType
	for rows.Next() {
		var jt domain.JobType
		var createdAtStr, updatedAtStr string
		if err := rows.Scan(&jt.ID, &jt.CompanyID, &jt.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning job type row: %w", err)
		}
		if err := parseJobTypeTimes(&jt, createdAtStr, updatedAtStr); err != nil {
			return nil, err
		}
		jobTypes = append(jobTypes, &jt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job types: %w", err)
	}
	return jobTypes, nil
}

func (r *SQLiteJobTypeRepo) Update(ctx context.Context, jt *domain.JobType) error {
	query := `UPDATE job_types SET name = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, jt.Name, jt.UpdatedAt.Format(time.RFC3339), jt.ID)
	if err != nil {
		return fmt.Errorf("updating job type: %w", err)
	}
	return nil
}

func (r *SQLiteJobTypeRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM job_types WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting job type: %w", err)
	}
	return nil
}

func (r *SQLiteJobTypeRepo) scanJobType(row *sql.Row) (*domain.JobType, error) {
	var jt domain.JobType
	var createdAtStr, updatedAtStr string
	err := row.Scan(&jt.ID, &jt.CompanyID, &jt.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("job type: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning job type: %w", err)
	}
	if err := parseJobTypeTimes(&jt, createdAtStr, updatedAtStr); err != nil {
		return nil, err
	}
	return &jt, nil
}

func parseJobTypeTimes(jt *domain.JobType, createdAtStr, updatedAtStr string) error {
	var err error
	jt.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	jt.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
