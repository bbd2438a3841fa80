package importer

import (
	"fmt"

	"github.com/mfletch/jobsite/internal/domain"
)

// ValidateWorkflowSchema checks the workflow schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateWorkflowSchema(schema *WorkflowSchema) []error {
	var errs []error

	if schema.JobType.Name == "" {
		errs = append(errs, fmt.Errorf("job_type.name is required"))
	}
	if len(schema.Templates) == 0 {
		errs = append(errs, fmt.Errorf("templates: at least one template is required"))
	}

	seen := make(map[int]bool, len(schema.Templates))
	for i, t := range schema.Templates {
		prefix := fmt.Sprintf("templates[%d]", i)

		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.SortOrder < 1 {
			errs = append(errs, fmt.Errorf("%s.sort_order must be at least 1", prefix))
		}
		if seen[t.SortOrder] {
			errs = append(errs, fmt.Errorf("%s.sort_order %d is duplicated", prefix, t.SortOrder))
		}
		seen[t.SortOrder] = true
		if t.EstimatedDays < 1 {
			errs = append(errs, fmt.Errorf("%s.estimated_days must be at least 1", prefix))
		}

		if t.PredecessorSortOrder != nil {
			// A predecessor must precede in sequence; this statically rules
			// out cycles.
			if *t.PredecessorSortOrder >= t.SortOrder {
				errs = append(errs, fmt.Errorf("%s.predecessor %d must be less than sort_order %d",
					prefix, *t.PredecessorSortOrder, t.SortOrder))
			} else if !seen[*t.PredecessorSortOrder] {
				errs = append(errs, fmt.Errorf("%s.predecessor %d does not match any earlier template",
					prefix, *t.PredecessorSortOrder))
			}
			if t.Relationship != "" && !domain.ValidRelationships[t.Relationship] {
				errs = append(errs, fmt.Errorf("%s.relationship: invalid value %q", prefix, t.Relationship))
			}
		} else if t.Relationship != "" {
			errs = append(errs, fmt.Errorf("%s.relationship set without a predecessor", prefix))
		}

		for j, st := range t.Subtasks {
			if st.Name == "" {
				errs = append(errs, fmt.Errorf("%s.subtasks[%d].name is required", prefix, j))
			}
			if st.EstimatedDays < 1 {
				errs = append(errs, fmt.Errorf("%s.subtasks[%d].estimated_days must be at least 1", prefix, j))
			}
		}
		for j, label := range t.Checklist {
			if label == "" {
				errs = append(errs, fmt.Errorf("%s.checklist[%d] must not be empty", prefix, j))
			}
		}
	}

	return errs
}
