package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfletch/jobsite/internal/domain"
)

// Company / job fixtures

func NewTestCompany(name string) *domain.Company {
	return &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestJobType(companyID, name string) *domain.JobType {
	now := time.Now().UTC()
	return &domain.JobType{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type JobOption func(*domain.Job)

func WithJobType(id string) JobOption {
	return func(j *domain.Job) {
		j.JobTypeID = &id
	}
}

func WithJobStartDate(d time.Time) JobOption {
	return func(j *domain.Job) {
		j.StartDate = &d
	}
}

func NewTestJob(companyID, name string, opts ...JobOption) *domain.Job {
	now := time.Now().UTC()
	j := &domain.Job{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Status:    domain.JobActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Template fixtures

type TemplateOption func(*domain.ActivityTemplate)

func WithPredecessor(sortOrder int, rel domain.Relationship) TemplateOption {
	return func(t *domain.ActivityTemplate) {
		t.PredecessorSortOrder = &sortOrder
		t.Relationship = rel
	}
}

func WithStage(stage string) TemplateOption {
	return func(t *domain.ActivityTemplate) {
		t.Stage = stage
	}
}

func WithConsultant(consultant string) TemplateOption {
	return func(t *domain.ActivityTemplate) {
		t.Consultant = consultant
	}
}

func NewTestTemplate(jobTypeID string, sortOrder, estimatedDays int, name string, opts ...TemplateOption) *domain.ActivityTemplate {
	now := time.Now().UTC()
	t := &domain.ActivityTemplate{
		ID:            uuid.New().String(),
		JobTypeID:     jobTypeID,
		SortOrder:     sortOrder,
		Name:          name,
		EstimatedDays: estimatedDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestSubtask(templateID string, sortOrder, estimatedDays int, name string) *domain.TemplateSubtask {
	return &domain.TemplateSubtask{
		ID:            uuid.New().String(),
		TemplateID:    templateID,
		SortOrder:     sortOrder,
		Name:          name,
		EstimatedDays: estimatedDays,
	}
}

func NewTestChecklistItem(templateID string, sortOrder int, label string) *domain.TemplateChecklistItem {
	return &domain.TemplateChecklistItem{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		SortOrder:  sortOrder,
		Label:      label,
	}
}

// Activity fixtures

type ActivityOption func(*domain.JobActivity)

func WithActivityPredecessor(sortOrder int, rel domain.Relationship) ActivityOption {
	return func(a *domain.JobActivity) {
		a.PredecessorSortOrder = &sortOrder
		a.Relationship = rel
	}
}

func WithActivityDates(start, end time.Time) ActivityOption {
	return func(a *domain.JobActivity) {
		a.StartDate = &start
		a.EndDate = &end
	}
}

func WithActivityStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.JobActivity) {
		a.Status = s
	}
}

func WithTemplateID(id string) ActivityOption {
	return func(a *domain.JobActivity) {
		a.TemplateID = &id
	}
}

func WithParent(id string) ActivityOption {
	return func(a *domain.JobActivity) {
		a.ParentID = &id
	}
}

func NewTestActivity(jobID string, sortOrder, estimatedDays int, name string, opts ...ActivityOption) *domain.JobActivity {
	now := time.Now().UTC()
	a := &domain.JobActivity{
		ID:            uuid.New().String(),
		JobID:         jobID,
		SortOrder:     sortOrder,
		Name:          name,
		EstimatedDays: estimatedDays,
		Status:        domain.ActivityNotStarted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
