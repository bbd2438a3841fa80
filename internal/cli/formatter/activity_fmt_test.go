package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mfletch/jobsite/internal/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatActivityList_IndentsSubtasksUnderParent(t *testing.T) {
	pred := 1
	parent := &domain.JobActivity{
		ID: "aaaa1111-0000", JobID: "job-1", SortOrder: 1,
		Name: "Site establishment", EstimatedDays: 5,
		StartDate: datePtr(2025, 1, 6), EndDate: datePtr(2025, 1, 10),
		Status: domain.ActivityInProgress,
	}
	child := &domain.JobActivity{
		ID: "bbbb2222-0000", JobID: "job-1", ParentID: &parent.ID, SortOrder: 1,
		Name: "Fencing", EstimatedDays: 2,
		StartDate: datePtr(2025, 1, 6), EndDate: datePtr(2025, 1, 7),
		Status: domain.ActivityDone,
	}
	second := &domain.JobActivity{
		ID: "cccc3333-0000", JobID: "job-1", SortOrder: 2,
		Name: "Footings", EstimatedDays: 3,
		PredecessorSortOrder: &pred, Relationship: domain.RelFinishToStart,
		Status: domain.ActivityNotStarted,
	}

	out := FormatActivityList([]*domain.JobActivity{parent, second, child})
	assert.Contains(t, out, "Site establishment")
	assert.Contains(t, out, "  Fencing", "subtask indents under its parent")
	assert.Contains(t, out, "1 FS")
	assert.Contains(t, out, "Mon 06 Jan")
	assert.Contains(t, out, "in progress")
}

func TestFormatChecklist(t *testing.T) {
	completedAt := time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC)
	items := []*domain.ActivityChecklistItem{
		{ID: "item-1-long-id", ActivityID: "a1", SortOrder: 1, Label: "Inspection booked", Completed: true, CompletedAt: &completedAt},
		{ID: "item-2-long-id", ActivityID: "a1", SortOrder: 2, Label: "Concrete ordered"},
	}

	out := FormatChecklist(items)
	assert.Contains(t, out, "[x] Inspection booked")
	assert.Contains(t, out, "[ ] Concrete ordered")
	assert.Contains(t, out, "1 of 2 complete")
}

func TestFormatJobDetail(t *testing.T) {
	j := &domain.Job{
		ID: "job-1", CompanyID: "c1", Name: "12 Harbour View",
		StartDate: datePtr(2025, 1, 6), Status: domain.JobActive,
	}
	activities := []*domain.JobActivity{
		{ID: "a1", JobID: "job-1", SortOrder: 1, Name: "Footings", EstimatedDays: 3, Status: domain.ActivityDone},
		{ID: "a2", JobID: "job-1", SortOrder: 2, Name: "Frame", EstimatedDays: 10, Status: domain.ActivityNotStarted},
	}

	out := FormatJobDetail(j, activities)
	assert.Contains(t, out, "12 HARBOUR VIEW")
	assert.Contains(t, out, "1/2 done")
	assert.Contains(t, out, "Frame")
}

func TestFormatTemplateList(t *testing.T) {
	pred := 1
	templates := []*domain.ActivityTemplate{
		{ID: "t1", SortOrder: 1, Name: "Site survey", Stage: "Pre-construction", EstimatedDays: 2},
		{ID: "t2", SortOrder: 2, Name: "Footings", EstimatedDays: 5,
			PredecessorSortOrder: &pred, Relationship: domain.RelFinishToStart},
	}

	out := FormatTemplateList(templates)
	assert.Contains(t, out, "Site survey")
	assert.Contains(t, out, "Pre-construction")
	assert.Contains(t, out, "1 FS")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{
			{"x", "y"},
			{"longer cell", "z"},
		},
	)
	lines := 0
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines, "header, separator, and two rows")
	assert.Contains(t, out, "LONG HEADER")
	assert.Contains(t, out, "longer cell")
}
