package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
)

type activityService struct {
	repos  *repository.Repos
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityService creates the job-activity editing service.
func NewActivityService(repos *repository.Repos, logger *slog.Logger) ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &activityService{
		repos:  repos,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *activityService) Get(ctx context.Context, companyID, id string) (*domain.JobActivity, error) {
	return s.repos.Activities.GetByID(ctx, companyID, id)
}

func (s *activityService) ListByJob(ctx context.Context, companyID, jobID string) ([]*domain.JobActivity, error) {
	if _, err := s.repos.Jobs.GetByID(ctx, companyID, jobID); err != nil {
		return nil, err
	}
	return s.repos.Activities.ListByJob(ctx, jobID)
}

// Update applies a field edit to an activity. Scheduling fields are
// validated first, and every changed field lands in the audit trail as a
// typed diff.
func (s *activityService) Update(ctx context.Context, companyID string, a *domain.JobActivity, actor domain.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	old, err := s.repos.Activities.GetByID(ctx, companyID, a.ID)
	if err != nil {
		return err
	}

	var cs domain.ChangeSet
	cs.Str("name", old.Name, a.Name)
	cs.Str("stage", old.Stage, a.Stage)
	cs.Str("category", old.Category, a.Category)
	cs.Str("consultant", old.Consultant, a.Consultant)
	cs.Str("deliverable", old.Deliverable, a.Deliverable)
	cs.Str("phase", old.Phase, a.Phase)
	cs.Int("estimated_days", old.EstimatedDays, a.EstimatedDays)
	cs.Int("sort_order", old.SortOrder, a.SortOrder)
	cs.IntPtr("predecessor_sort_order", old.PredecessorSortOrder, a.PredecessorSortOrder)
	cs.Relationship("relationship", old.Relationship, a.Relationship)
	cs.Date("start_date", old.StartDate, a.StartDate)
	cs.Date("end_date", old.EndDate, a.EndDate)

	if cs.Empty() {
		return nil
	}

	a.Status = old.Status
	a.UpdatedAt = s.now()
	if err := s.repos.Activities.Update(ctx, a); err != nil {
		return err
	}
	return s.audit(ctx, old.JobID, domain.EventActivityUpdated, actor, map[string]any{
		"activity_id": a.ID,
		"changes":     cs.Changes(),
	})
}

// UpdateStatus transitions an activity's status. Entering done is blocked
// while any checklist item is incomplete.
func (s *activityService) UpdateStatus(ctx context.Context, companyID, id string, status domain.ActivityStatus, actor domain.Actor) error {
	a, err := s.repos.Activities.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}

	open := 0
	if status == domain.ActivityDone {
		open, err = s.repos.Checklists.CountOpen(ctx, a.ID)
		if err != nil {
			return err
		}
	}

	oldStatus := a.Status
	if err := a.ChangeStatus(status, open, s.now()); err != nil {
		return err
	}
	if oldStatus == a.Status {
		return nil
	}
	if err := s.repos.Activities.Update(ctx, a); err != nil {
		return err
	}
	return s.audit(ctx, a.JobID, domain.EventStatusChanged, actor, map[string]any{
		"activity_id": a.ID,
		"from":        string(oldStatus),
		"to":          string(a.Status),
	})
}

func (s *activityService) Delete(ctx context.Context, companyID, id string) error {
	// Scoped lookup first so another tenant's ID reads as not found.
	if _, err := s.repos.Activities.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	return s.repos.Activities.Delete(ctx, id)
}

func (s *activityService) ListChecklist(ctx context.Context, companyID, activityID string) ([]*domain.ActivityChecklistItem, error) {
	if _, err := s.repos.Activities.GetByID(ctx, companyID, activityID); err != nil {
		return nil, err
	}
	return s.repos.Checklists.ListByActivity(ctx, activityID)
}

func (s *activityService) CompleteChecklistItem(ctx context.Context, companyID, itemID string, actor domain.Actor) error {
	item, err := s.repos.Checklists.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if _, err := s.repos.Activities.GetByID(ctx, companyID, item.ActivityID); err != nil {
		return err
	}
	return s.repos.Checklists.Complete(ctx, itemID, s.now())
}

func (s *activityService) audit(ctx context.Context, jobID string, eventType domain.AuditEventType, actor domain.Actor, payload map[string]any) error {
	detail, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding audit detail: %w", err)
	}
	return s.repos.Audit.Create(ctx, &domain.AuditEvent{
		ID:        uuid.New().String(),
		JobID:     jobID,
		EventType: eventType,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Detail:    string(detail),
		CreatedAt: s.now(),
	})
}
