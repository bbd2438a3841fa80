package service

import (
	"context"
	"time"

	"github.com/mfletch/jobsite/internal/contract"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/importer"
)

// ScheduleService owns the three scheduling operations: applying a job
// type's workflow to a job, re-deriving dates after edits, and repairing
// predecessor links against their source templates.
type ScheduleService interface {
	Instantiate(ctx context.Context, req contract.InstantiateRequest) (*contract.InstantiateResponse, error)
	Recalculate(ctx context.Context, req contract.RecalculateRequest) (*contract.RecalculateResponse, error)
	SyncPredecessors(ctx context.Context, req contract.SyncRequest) (*contract.SyncResponse, error)
}

type ActivityService interface {
	Get(ctx context.Context, companyID, id string) (*domain.JobActivity, error)
	ListByJob(ctx context.Context, companyID, jobID string) ([]*domain.JobActivity, error)
	Update(ctx context.Context, companyID string, a *domain.JobActivity, actor domain.Actor) error
	UpdateStatus(ctx context.Context, companyID, id string, status domain.ActivityStatus, actor domain.Actor) error
	Delete(ctx context.Context, companyID, id string) error
	ListChecklist(ctx context.Context, companyID, activityID string) ([]*domain.ActivityChecklistItem, error)
	CompleteChecklistItem(ctx context.Context, companyID, itemID string, actor domain.Actor) error
}

// ImportResult holds the outcome of a workflow import.
type ImportResult struct {
	JobType       *domain.JobType
	TemplateCount int
	SubtaskCount  int
	ChecklistLen  int
}

type TemplateService interface {
	CreateJobType(ctx context.Context, jt *domain.JobType) error
	ListJobTypes(ctx context.Context, companyID string) ([]*domain.JobType, error)
	CreateTemplate(ctx context.Context, companyID string, t *domain.ActivityTemplate) error
	UpdateTemplate(ctx context.Context, companyID string, t *domain.ActivityTemplate) error
	ListTemplates(ctx context.Context, companyID, jobTypeID string) ([]*domain.ActivityTemplate, error)
	AddSubtask(ctx context.Context, companyID string, s *domain.TemplateSubtask) error
	AddChecklistItem(ctx context.Context, companyID string, c *domain.TemplateChecklistItem) error
	ImportWorkflow(ctx context.Context, companyID, filePath string) (*ImportResult, error)
	ImportWorkflowFromSchema(ctx context.Context, companyID string, schema *importer.WorkflowSchema) (*ImportResult, error)
}

type JobService interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, companyID, id string) (*domain.Job, error)
	List(ctx context.Context, companyID string) ([]*domain.Job, error)
	SetStartDate(ctx context.Context, companyID, id string, start time.Time) error
}
