package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/importer"
	"github.com/mfletch/jobsite/internal/repository"
)

type templateService struct {
	repos  *repository.Repos
	uow    db.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewTemplateService creates the workflow authoring service.
func NewTemplateService(repos *repository.Repos, uow db.UnitOfWork, logger *slog.Logger) TemplateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &templateService{
		repos:  repos,
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *templateService) CreateJobType(ctx context.Context, jt *domain.JobType) error {
	if jt.Name == "" {
		return fmt.Errorf("%w: job type name is required", domain.ErrInvalidState)
	}
	if jt.ID == "" {
		jt.ID = uuid.New().String()
	}
	now := s.now()
	jt.CreatedAt = now
	jt.UpdatedAt = now
	return s.repos.JobTypes.Create(ctx, jt)
}

func (s *templateService) ListJobTypes(ctx context.Context, companyID string) ([]*domain.JobType, error) {
	return s.repos.JobTypes.List(ctx, companyID)
}

func (s *templateService) CreateTemplate(ctx context.Context, companyID string, t *domain.ActivityTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	// Confirms the job type exists under this company before writing.
	if _, err := s.repos.JobTypes.GetByID(ctx, companyID, t.JobTypeID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.repos.Templates.Create(ctx, t)
}

func (s *templateService) UpdateTemplate(ctx context.Context, companyID string, t *domain.ActivityTemplate) error {
	if err := t.Validate(); err != nil {
		return err
	}
	existing, err := s.repos.Templates.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if _, err := s.repos.JobTypes.GetByID(ctx, companyID, existing.JobTypeID); err != nil {
		return err
	}
	t.JobTypeID = existing.JobTypeID
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = s.now()
	return s.repos.Templates.Update(ctx, t)
}

func (s *templateService) ListTemplates(ctx context.Context, companyID, jobTypeID string) ([]*domain.ActivityTemplate, error) {
	if _, err := s.repos.JobTypes.GetByID(ctx, companyID, jobTypeID); err != nil {
		return nil, err
	}
	return s.repos.Templates.ListByJobType(ctx, jobTypeID)
}

func (s *templateService) AddSubtask(ctx context.Context, companyID string, st *domain.TemplateSubtask) error {
	if st.Name == "" {
		return fmt.Errorf("%w: subtask name is required", domain.ErrInvalidState)
	}
	if st.EstimatedDays < 1 {
		return fmt.Errorf("%w: subtask estimated days must be at least 1", domain.ErrInvalidState)
	}
	if err := s.checkTemplateOwnership(ctx, companyID, st.TemplateID); err != nil {
		return err
	}
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	return s.repos.Templates.CreateSubtask(ctx, st)
}

func (s *templateService) AddChecklistItem(ctx context.Context, companyID string, c *domain.TemplateChecklistItem) error {
	if c.Label == "" {
		return fmt.Errorf("%w: checklist label is required", domain.ErrInvalidState)
	}
	if err := s.checkTemplateOwnership(ctx, companyID, c.TemplateID); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return s.repos.Templates.CreateChecklistItem(ctx, c)
}

// ImportWorkflow loads a workflow YAML file, validates it, and persists the
// job type with all its templates in one transaction.
func (s *templateService) ImportWorkflow(ctx context.Context, companyID, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadWorkflowSchema(filePath)
	if err != nil {
		return nil, err
	}
	return s.ImportWorkflowFromSchema(ctx, companyID, schema)
}

func (s *templateService) ImportWorkflowFromSchema(ctx context.Context, companyID string, schema *importer.WorkflowSchema) (*ImportResult, error) {
	if errs := importer.ValidateWorkflowSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("%w: invalid workflow: %w", domain.ErrInvalidState, errors.Join(errs...))
	}

	wf := importer.ConvertWorkflowSchema(schema, companyID, s.now())

	result := &ImportResult{JobType: &wf.JobType, TemplateCount: len(wf.Templates)}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepos := repository.NewRepos(tx)

		if err := txRepos.JobTypes.Create(ctx, &wf.JobType); err != nil {
			return err
		}
		for i := range wf.Templates {
			t := &wf.Templates[i]
			if err := txRepos.Templates.Create(ctx, t); err != nil {
				return err
			}
			for i := range wf.Subtasks[t.ID] {
				if err := txRepos.Templates.CreateSubtask(ctx, &wf.Subtasks[t.ID][i]); err != nil {
					return err
				}
				result.SubtaskCount++
			}
			for i := range wf.Checklist[t.ID] {
				if err := txRepos.Templates.CreateChecklistItem(ctx, &wf.Checklist[t.ID][i]); err != nil {
					return err
				}
				result.ChecklistLen++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("workflow imported",
		"job_type", wf.JobType.Name,
		"templates", result.TemplateCount,
		"subtasks", result.SubtaskCount,
		"checklist_items", result.ChecklistLen)
	return result, nil
}

func (s *templateService) checkTemplateOwnership(ctx context.Context, companyID, templateID string) error {
	tmpl, err := s.repos.Templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	_, err = s.repos.JobTypes.GetByID(ctx, companyID, tmpl.JobTypeID)
	return err
}
