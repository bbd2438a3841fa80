package domain

import (
	"fmt"
	"time"
)

// Job is a concrete project a job type's workflow gets applied to.
type Job struct {
	ID        string
	CompanyID string
	Name      string
	JobTypeID *string
	StartDate *time.Time
	Status    JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobActivity is a live, dated instance of a template on a specific job,
// or a manually created entry (TemplateID nil). Subtasks are activities
// with ParentID set; nesting is one level deep.
type JobActivity struct {
	ID         string
	JobID      string
	TemplateID *string
	ParentID   *string
	SortOrder  int

	Name        string
	Stage       string
	Category    string
	Consultant  string
	Deliverable string
	Phase       string

	EstimatedDays        int
	PredecessorSortOrder *int
	Relationship         Relationship

	StartDate *time.Time
	EndDate   *time.Time
	Status    ActivityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the scheduling invariants on an activity. The predecessor
// rule mirrors the template rule: a predecessor must precede in sequence,
// which also rules out cycles.
func (a *JobActivity) Validate() error {
	if a.EstimatedDays < 1 {
		return fmt.Errorf("%w: estimated days must be at least 1", ErrInvalidState)
	}
	if a.PredecessorSortOrder == nil {
		if a.Relationship != "" {
			return fmt.Errorf("%w: relationship set without a predecessor", ErrInvalidState)
		}
		return nil
	}
	if *a.PredecessorSortOrder >= a.SortOrder {
		return fmt.Errorf("%w: predecessor sort order %d must be less than own sort order %d",
			ErrInvalidState, *a.PredecessorSortOrder, a.SortOrder)
	}
	if a.Relationship != "" && !ValidRelationships[string(a.Relationship)] {
		return fmt.Errorf("%w: unknown relationship %q", ErrInvalidState, a.Relationship)
	}
	return nil
}

// ChangeStatus applies a status transition. Every transition is permitted
// except entering done while checklist items remain open; callers pass the
// current open-item count.
func (a *JobActivity) ChangeStatus(status ActivityStatus, openChecklistItems int, now time.Time) error {
	if !ValidActivityStatuses[string(status)] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, status)
	}
	if status == ActivityDone && openChecklistItems > 0 {
		return fmt.Errorf("%w: %d item(s) still open", ErrChecklistIncomplete, openChecklistItems)
	}
	a.Status = status
	a.UpdatedAt = now
	return nil
}

// ActivityChecklistItem is a completion gate on a job activity. Checklist
// items are never scheduled; they only block the done transition.
type ActivityChecklistItem struct {
	ID          string
	ActivityID  string
	SortOrder   int
	Label       string
	Completed   bool
	CompletedAt *time.Time
}
