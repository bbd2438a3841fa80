package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func validSchema() *WorkflowSchema {
	return &WorkflowSchema{
		JobType: JobTypeImport{Name: "New Build"},
		Templates: []TemplateImport{
			{SortOrder: 1, Name: "Site survey", EstimatedDays: 2},
			{SortOrder: 2, Name: "Footings", EstimatedDays: 5, PredecessorSortOrder: intp(1), Relationship: "FS"},
			{
				SortOrder: 3, Name: "Frame", EstimatedDays: 10,
				PredecessorSortOrder: intp(2), Relationship: "SS",
				Subtasks:  []SubtaskImport{{Name: "Order timber", EstimatedDays: 1}},
				Checklist: []string{"Engineer sign-off"},
			},
		},
	}
}

func TestValidateWorkflowSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateWorkflowSchema(validSchema()))
}

func TestValidateWorkflowSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WorkflowSchema)
		want   string
	}{
		{
			name:   "missing job type name",
			mutate: func(s *WorkflowSchema) { s.JobType.Name = "" },
			want:   "job_type.name is required",
		},
		{
			name:   "no templates",
			mutate: func(s *WorkflowSchema) { s.Templates = nil },
			want:   "at least one template",
		},
		{
			name:   "missing template name",
			mutate: func(s *WorkflowSchema) { s.Templates[1].Name = "" },
			want:   "templates[1].name is required",
		},
		{
			name:   "zero estimated days",
			mutate: func(s *WorkflowSchema) { s.Templates[0].EstimatedDays = 0 },
			want:   "estimated_days must be at least 1",
		},
		{
			name:   "duplicate sort order",
			mutate: func(s *WorkflowSchema) { s.Templates[2].SortOrder = 2 },
			want:   "sort_order 2 is duplicated",
		},
		{
			name:   "predecessor not earlier",
			mutate: func(s *WorkflowSchema) { s.Templates[1].PredecessorSortOrder = intp(2) },
			want:   "must be less than sort_order",
		},
		{
			name:   "predecessor does not exist",
			mutate: func(s *WorkflowSchema) { s.Templates[2].PredecessorSortOrder = intp(99) },
			want:   "must be less than sort_order",
		},
		{
			name: "predecessor earlier but unknown",
			mutate: func(s *WorkflowSchema) {
				s.Templates[0].SortOrder = 5
				s.Templates[1].SortOrder = 6
				s.Templates[1].PredecessorSortOrder = intp(4)
				s.Templates[2].SortOrder = 7
				s.Templates[2].PredecessorSortOrder = intp(6)
			},
			want: "does not match any earlier template",
		},
		{
			name:   "invalid relationship",
			mutate: func(s *WorkflowSchema) { s.Templates[1].Relationship = "XX" },
			want:   `invalid value "XX"`,
		},
		{
			name:   "relationship without predecessor",
			mutate: func(s *WorkflowSchema) { s.Templates[0].Relationship = "FS" },
			want:   "relationship set without a predecessor",
		},
		{
			name:   "subtask zero days",
			mutate: func(s *WorkflowSchema) { s.Templates[2].Subtasks[0].EstimatedDays = 0 },
			want:   "subtasks[0].estimated_days",
		},
		{
			name:   "empty checklist label",
			mutate: func(s *WorkflowSchema) { s.Templates[2].Checklist[0] = "" },
			want:   "checklist[0] must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validSchema()
			tt.mutate(schema)
			errs := ValidateWorkflowSchema(schema)
			require.NotEmpty(t, errs)
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.want) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.want, errs)
		})
	}
}
