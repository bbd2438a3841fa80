package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfletch/jobsite/internal/domain"
)

// Workflow is the fully converted result of a schema import: a job type and
// its templates with their subtasks and checklist items, ready to persist.
type Workflow struct {
	JobType   domain.JobType
	Templates []domain.ActivityTemplate
	Subtasks  map[string][]domain.TemplateSubtask
	Checklist map[string][]domain.TemplateChecklistItem
}

// ConvertWorkflowSchema turns a validated schema into domain objects with
// fresh IDs, all owned by the given company. Callers must run
// ValidateWorkflowSchema first.
func ConvertWorkflowSchema(schema *WorkflowSchema, companyID string, now time.Time) *Workflow {
	jobType := domain.JobType{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      schema.JobType.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	wf := &Workflow{
		JobType:   jobType,
		Templates: make([]domain.ActivityTemplate, 0, len(schema.Templates)),
		Subtasks:  make(map[string][]domain.TemplateSubtask),
		Checklist: make(map[string][]domain.TemplateChecklistItem),
	}

	for _, t := range schema.Templates {
		tmpl := domain.ActivityTemplate{
			ID:                   uuid.NewString(),
			JobTypeID:            jobType.ID,
			SortOrder:            t.SortOrder,
			Name:                 t.Name,
			Stage:                t.Stage,
			Category:             t.Category,
			Consultant:           t.Consultant,
			Deliverable:          t.Deliverable,
			Phase:                t.Phase,
			EstimatedDays:        t.EstimatedDays,
			PredecessorSortOrder: t.PredecessorSortOrder,
			Relationship:         domain.Relationship(t.Relationship),
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		wf.Templates = append(wf.Templates, tmpl)

		for i, st := range t.Subtasks {
			wf.Subtasks[tmpl.ID] = append(wf.Subtasks[tmpl.ID], domain.TemplateSubtask{
				ID:            uuid.NewString(),
				TemplateID:    tmpl.ID,
				SortOrder:     i + 1,
				Name:          st.Name,
				EstimatedDays: st.EstimatedDays,
			})
		}
		for i, label := range t.Checklist {
			wf.Checklist[tmpl.ID] = append(wf.Checklist[tmpl.ID], domain.TemplateChecklistItem{
				ID:         uuid.NewString(),
				TemplateID: tmpl.ID,
				SortOrder:  i + 1,
				Label:      label,
			})
		}
	}

	return wf
}
