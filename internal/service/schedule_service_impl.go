package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mfletch/jobsite/internal/contract"
	"github.com/mfletch/jobsite/internal/db"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/schedule"
)

type scheduleService struct {
	repos    *repository.Repos
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer OpObserver
	now      func() time.Time
}

// NewScheduleService creates the scheduling service over the given
// read-side repositories and unit of work.
func NewScheduleService(repos *repository.Repos, uow db.UnitOfWork, logger *slog.Logger, observers ...OpObserver) ScheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		repos:    repos,
		uow:      uow,
		logger:   logger,
		observer: opObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *scheduleService) observe(ctx context.Context, op Op, jobID string, started time.Time, counts map[string]int, err error) {
	s.observer.ObserveOp(ctx, OpEvent{
		Op:        op,
		JobID:     jobID,
		Duration:  time.Since(started),
		Err:       err,
		Counts:    counts,
		StartedAt: started,
	})
}

// Instantiate applies a job type's workflow templates to a job, resolving
// every activity's start/end through the working-day calendar and the
// precedence resolver, then persisting the full activity set in one
// transaction.
func (s *scheduleService) Instantiate(ctx context.Context, req contract.InstantiateRequest) (resp *contract.InstantiateResponse, err error) {
	started := s.now()
	defer func() {
		counts := map[string]int{}
		if resp != nil {
			counts["created"] = resp.Created
		}
		s.observe(ctx, OpInstantiateActivities, req.JobID, started, counts, err)
	}()

	job, err := s.repos.Jobs.GetByID(ctx, req.CompanyID, req.JobID)
	if err != nil {
		return nil, err
	}
	jobType, err := s.repos.JobTypes.GetByID(ctx, req.CompanyID, req.JobTypeID)
	if err != nil {
		return nil, err
	}

	templates, err := s.repos.Templates.ListByJobType(ctx, jobType.ID)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: job type %q has no activity templates; build the workflow first",
			domain.ErrInvalidState, jobType.Name)
	}

	// Resolve every template's window in one forward pass. The strictly
	// increasing predecessor invariant means each predecessor is resolved
	// before its successor is visited.
	entries := make([]schedule.Entry, 0, len(templates))
	for _, t := range templates {
		entries = append(entries, schedule.Entry{
			SortOrder:            t.SortOrder,
			EstimatedDays:        t.EstimatedDays,
			PredecessorSortOrder: t.PredecessorSortOrder,
			Relationship:         t.Relationship,
		})
	}
	windows := schedule.ResolvePass(entries, req.StartDate, func(e schedule.Entry, pred int) {
		s.logger.Warn("unresolved predecessor during instantiation",
			"job_id", req.JobID, "sort_order", e.SortOrder, "predecessor_sort_order", pred)
	})

	// Children are laid out before the transaction so the write phase is
	// pure inserts.
	type subtaskPlan struct {
		subtask *domain.TemplateSubtask
		window  schedule.Window
	}
	subtaskPlans := make(map[string][]subtaskPlan, len(templates))
	checklistItems := make(map[string][]*domain.TemplateChecklistItem, len(templates))
	for _, t := range templates {
		subtasks, err := s.repos.Templates.ListSubtasks(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if len(subtasks) > 0 {
			days := make([]int, len(subtasks))
			for i, st := range subtasks {
				days[i] = st.EstimatedDays
			}
			chained := schedule.ChainSubtasks(windows[t.SortOrder].Start, days)
			plans := make([]subtaskPlan, len(subtasks))
			for i, st := range subtasks {
				plans[i] = subtaskPlan{subtask: st, window: chained[i]}
			}
			subtaskPlans[t.ID] = plans
		}

		items, err := s.repos.Templates.ListChecklistItems(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		checklistItems[t.ID] = items
	}

	now := s.now()
	created := 0
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepos := repository.NewRepos(tx)

		for _, t := range templates {
			w := windows[t.SortOrder]
			parent := activityFromTemplate(job.ID, t, w, now)
			if err := txRepos.Activities.Create(ctx, parent); err != nil {
				return err
			}
			created++

			for _, plan := range subtaskPlans[t.ID] {
				child := childActivity(job.ID, parent.ID, plan.subtask, plan.window, now)
				if err := txRepos.Activities.Create(ctx, child); err != nil {
					return err
				}
				created++
			}

			for _, item := range checklistItems[t.ID] {
				row := &domain.ActivityChecklistItem{
					ID:         uuid.New().String(),
					ActivityID: parent.ID,
					SortOrder:  item.SortOrder,
					Label:      item.Label,
				}
				if err := txRepos.Checklists.Create(ctx, row); err != nil {
					return err
				}
			}
		}

		detail, err := json.Marshal(map[string]any{
			"job_type_id":   jobType.ID,
			"job_type_name": jobType.Name,
			"start_date":    schedule.EnsureWorkingDay(req.StartDate).Format("2006-01-02"),
			"created":       created,
		})
		if err != nil {
			return fmt.Errorf("encoding audit detail: %w", err)
		}
		return txRepos.Audit.Create(ctx, &domain.AuditEvent{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			EventType: domain.EventActivitiesInstantiated,
			ActorID:   req.Actor.ID,
			ActorName: req.Actor.Name,
			Detail:    string(detail),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &contract.InstantiateResponse{Created: created}, nil
}

// Recalculate re-derives start/end dates for a job's live top-level
// activities, preserving manually set anchors where no predecessor
// applies, and stages only actual date changes.
func (s *scheduleService) Recalculate(ctx context.Context, req contract.RecalculateRequest) (resp *contract.RecalculateResponse, err error) {
	started := s.now()
	defer func() {
		counts := map[string]int{}
		if resp != nil {
			counts["changed"] = resp.Changed
		}
		s.observe(ctx, OpRecalculateSchedule, req.JobID, started, counts, err)
	}()

	job, err := s.repos.Jobs.GetByID(ctx, req.CompanyID, req.JobID)
	if err != nil {
		return nil, err
	}

	activities, err := s.repos.Activities.ListTopLevelByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return &contract.RecalculateResponse{}, nil
	}

	projectStart := s.now()
	if activities[0].StartDate != nil {
		projectStart = *activities[0].StartDate
	}

	bySortOrder := make(map[int]*domain.JobActivity, len(activities))
	entries := make([]schedule.Entry, 0, len(activities))
	for _, a := range activities {
		bySortOrder[a.SortOrder] = a
		entries = append(entries, schedule.Entry{
			SortOrder:            a.SortOrder,
			EstimatedDays:        a.EstimatedDays,
			PredecessorSortOrder: a.PredecessorSortOrder,
			Relationship:         a.Relationship,
			Anchor:               a.StartDate,
		})
	}

	windows := schedule.ResolvePass(entries, projectStart, func(e schedule.Entry, pred int) {
		// Deliberate leniency: a dangling predecessor falls back to the
		// activity's own date instead of failing the whole pass.
		s.logger.Warn("predecessor not resolved, keeping existing start date",
			"job_id", job.ID, "sort_order", e.SortOrder, "predecessor_sort_order", pred)
	})

	type datePatch struct {
		id         string
		start, end time.Time
	}
	var patches []datePatch
	var changedIDs []string
	for _, a := range activities {
		w := windows[a.SortOrder]
		if sameDate(a.StartDate, w.Start) && sameDate(a.EndDate, w.End) {
			continue
		}
		patches = append(patches, datePatch{id: a.ID, start: w.Start, end: w.End})
		changedIDs = append(changedIDs, a.ID)
	}

	if len(patches) == 0 {
		return &contract.RecalculateResponse{}, nil
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepos := repository.NewRepos(tx)
		for _, p := range patches {
			start, end := p.start, p.end
			if err := txRepos.Activities.UpdateDates(ctx, p.id, &start, &end, now); err != nil {
				return err
			}
		}

		detail, err := json.Marshal(map[string]any{"activity_ids": changedIDs})
		if err != nil {
			return fmt.Errorf("encoding audit detail: %w", err)
		}
		return txRepos.Audit.Create(ctx, &domain.AuditEvent{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			EventType: domain.EventScheduleRecalculated,
			ActorID:   req.Actor.ID,
			ActorName: req.Actor.Name,
			Detail:    string(detail),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &contract.RecalculateResponse{Changed: len(changedIDs), ActivityIDs: changedIDs}, nil
}

// SyncPredecessors reconciles a job's activity predecessor/relationship
// links back to the current state of their source templates. Dates are not
// recomputed; callers run Recalculate afterward when dates must follow.
func (s *scheduleService) SyncPredecessors(ctx context.Context, req contract.SyncRequest) (resp *contract.SyncResponse, err error) {
	started := s.now()
	defer func() {
		counts := map[string]int{}
		if resp != nil {
			counts["synced"] = resp.Synced
			counts["total"] = resp.Total
		}
		s.observe(ctx, OpSyncPredecessors, req.JobID, started, counts, err)
	}()

	job, err := s.repos.Jobs.GetByID(ctx, req.CompanyID, req.JobID)
	if err != nil {
		return nil, err
	}

	activities, err := s.repos.Activities.ListTopLevelByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	type predPatch struct {
		id           string
		predecessor  *int
		relationship domain.Relationship
	}
	var patches []predPatch
	total := 0
	for _, a := range activities {
		if a.TemplateID == nil {
			continue
		}
		total++

		tmpl, err := s.repos.Templates.GetByID(ctx, *a.TemplateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.logger.Warn("linked template no longer exists",
					"job_id", job.ID, "activity_id", a.ID, "template_id", *a.TemplateID)
				continue
			}
			return nil, err
		}

		wantRel := tmpl.Relationship
		if tmpl.PredecessorSortOrder == nil {
			wantRel = ""
		}
		if intPtrEqual(a.PredecessorSortOrder, tmpl.PredecessorSortOrder) && a.Relationship == wantRel {
			continue
		}
		patches = append(patches, predPatch{id: a.ID, predecessor: tmpl.PredecessorSortOrder, relationship: wantRel})
	}

	if len(patches) > 0 {
		now := s.now()
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txRepos := repository.NewRepos(tx)
			for _, p := range patches {
				if err := txRepos.Activities.UpdatePredecessor(ctx, p.id, p.predecessor, p.relationship, now); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return &contract.SyncResponse{Synced: len(patches), Total: total}, nil
}

// activityFromTemplate copies a template's descriptive and scheduling
// fields into a new top-level activity with the resolved window. The
// relationship is forced empty when no predecessor exists.
func activityFromTemplate(jobID string, t *domain.ActivityTemplate, w schedule.Window, now time.Time) *domain.JobActivity {
	rel := t.Relationship
	if t.PredecessorSortOrder == nil {
		rel = ""
	}
	start, end := w.Start, w.End
	templateID := t.ID
	return &domain.JobActivity{
		ID:                   uuid.New().String(),
		JobID:                jobID,
		TemplateID:           &templateID,
		SortOrder:            t.SortOrder,
		Name:                 t.Name,
		Stage:                t.Stage,
		Category:             t.Category,
		Consultant:           t.Consultant,
		Deliverable:          t.Deliverable,
		Phase:                t.Phase,
		EstimatedDays:        t.EstimatedDays,
		PredecessorSortOrder: t.PredecessorSortOrder,
		Relationship:         rel,
		StartDate:            &start,
		EndDate:              &end,
		Status:               domain.ActivityNotStarted,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func childActivity(jobID, parentID string, st *domain.TemplateSubtask, w schedule.Window, now time.Time) *domain.JobActivity {
	start, end := w.Start, w.End
	return &domain.JobActivity{
		ID:            uuid.New().String(),
		JobID:         jobID,
		ParentID:      &parentID,
		SortOrder:     st.SortOrder,
		Name:          st.Name,
		EstimatedDays: st.EstimatedDays,
		StartDate:     &start,
		EndDate:       &end,
		Status:        domain.ActivityNotStarted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// sameDate compares a stored nullable date with a computed one by calendar
// day, ignoring time of day.
func sameDate(stored *time.Time, computed time.Time) bool {
	if stored == nil {
		return false
	}
	sy, sm, sd := stored.Date()
	cy, cm, cd := computed.Date()
	return sy == cy && sm == cm && sd == cd
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
