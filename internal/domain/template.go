package domain

import (
	"fmt"
	"time"
)

// JobType groups the reusable workflow templates for one kind of job.
type JobType struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActivityTemplate is a reusable blueprint activity belonging to a job type.
// Predecessors are addressed by sort order, not by ID: PredecessorSortOrder
// refers to the SortOrder of another template in the same job type and must
// be strictly less than this template's own SortOrder.
type ActivityTemplate struct {
	ID        string
	JobTypeID string
	SortOrder int

	Name        string
	Stage       string
	Category    string
	Consultant  string
	Deliverable string
	Phase       string

	EstimatedDays        int
	PredecessorSortOrder *int
	Relationship         Relationship

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the scheduling invariants on a template.
func (t *ActivityTemplate) Validate() error {
	if t.EstimatedDays < 1 {
		return fmt.Errorf("%w: estimated days must be at least 1", ErrInvalidState)
	}
	if t.PredecessorSortOrder == nil {
		if t.Relationship != "" {
			return fmt.Errorf("%w: relationship set without a predecessor", ErrInvalidState)
		}
		return nil
	}
	if *t.PredecessorSortOrder >= t.SortOrder {
		return fmt.Errorf("%w: predecessor sort order %d must be less than own sort order %d",
			ErrInvalidState, *t.PredecessorSortOrder, t.SortOrder)
	}
	if t.Relationship != "" && !ValidRelationships[string(t.Relationship)] {
		return fmt.Errorf("%w: unknown relationship %q", ErrInvalidState, t.Relationship)
	}
	return nil
}

// TemplateSubtask is a child of a template. Subtasks carry their own
// duration but no precedence; they are chained sequentially inside their
// parent's window at instantiation time.
type TemplateSubtask struct {
	ID            string
	TemplateID    string
	SortOrder     int
	Name          string
	EstimatedDays int
}

// TemplateChecklistItem is an undated completion gate copied onto each
// instantiated activity.
type TemplateChecklistItem struct {
	ID         string
	TemplateID string
	SortOrder  int
	Label      string
}
