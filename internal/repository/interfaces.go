package repository

import (
	"context"
	"time"

	"github.com/mfletch/jobsite/internal/domain"
)

type CompanyRepo interface {
	Create(ctx context.Context, c *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
}

type JobTypeRepo interface {
	Create(ctx context.Context, jt *domain.JobType) error
	GetByID(ctx context.Context, companyID, id string) (*domain.JobType, error)
	List(ctx context.Context, companyID string) ([]*domain.JobType, error)
	Update(ctx context.Context, jt *domain.JobType) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ActivityTemplate) error
	GetByID(ctx context.Context, id string) (*domain.ActivityTemplate, error)
	// ListByJobType returns templates ordered by sort order ascending; that
	// ordering is the schedule topology.
	ListByJobType(ctx context.Context, jobTypeID string) ([]*domain.ActivityTemplate, error)
	Update(ctx context.Context, t *domain.ActivityTemplate) error
	Delete(ctx context.Context, id string) error

	CreateSubtask(ctx context.Context, s *domain.TemplateSubtask) error
	ListSubtasks(ctx context.Context, templateID string) ([]*domain.TemplateSubtask, error)
	CreateChecklistItem(ctx context.Context, c *domain.TemplateChecklistItem) error
	ListChecklistItems(ctx context.Context, templateID string) ([]*domain.TemplateChecklistItem, error)
}

type JobRepo interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Job, error)
	List(ctx context.Context, companyID string) ([]*domain.Job, error)
	Update(ctx context.Context, j *domain.Job) error
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.JobActivity) error
	GetByID(ctx context.Context, companyID, id string) (*domain.JobActivity, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.JobActivity, error)
	// ListTopLevelByJob returns parent activities (parent_id IS NULL)
	// ordered by sort order ascending.
	ListTopLevelByJob(ctx context.Context, jobID string) ([]*domain.JobActivity, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.JobActivity, error)
	Update(ctx context.Context, a *domain.JobActivity) error
	// UpdateDates stages the recalculator's output without touching any
	// other column.
	UpdateDates(ctx context.Context, id string, start, end *time.Time, updatedAt time.Time) error
	// UpdatePredecessor repairs the topology link without touching dates.
	UpdatePredecessor(ctx context.Context, id string, predecessorSortOrder *int, relationship domain.Relationship, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type ChecklistRepo interface {
	Create(ctx context.Context, c *domain.ActivityChecklistItem) error
	GetByID(ctx context.Context, id string) (*domain.ActivityChecklistItem, error)
	ListByActivity(ctx context.Context, activityID string) ([]*domain.ActivityChecklistItem, error)
	// CountOpen returns the number of incomplete items gating an activity's
	// done transition.
	CountOpen(ctx context.Context, activityID string) (int, error)
	Complete(ctx context.Context, id string, completedAt time.Time) error
}

type AuditRepo interface {
	Create(ctx context.Context, e *domain.AuditEvent) error
	ListByJob(ctx context.Context, jobID string) ([]*domain.AuditEvent, error)
}
