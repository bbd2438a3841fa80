package formatter

import (
	"fmt"
	"strings"

	"github.com/mfletch/jobsite/internal/domain"
)

// FormatJobList renders jobs as a table.
func FormatJobList(jobs []*domain.Job) string {
	headers := []string{"ID", "JOB", "START", "STATUS"}
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []string{
			Dim(truncateID(j.ID)),
			j.Name,
			formatDatePtr(j.StartDate),
			string(j.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatJobDetail renders a job header followed by its activity table.
func FormatJobDetail(j *domain.Job, activities []*domain.JobActivity) string {
	var b strings.Builder
	b.WriteString(Header(j.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Start:"), formatDatePtr(j.StartDate))
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:"), string(j.Status))

	if len(activities) == 0 {
		b.WriteString(Dim("No activities scheduled."))
		return b.String()
	}

	done := 0
	for _, a := range activities {
		if a.Status == domain.ActivityDone {
			done++
		}
	}
	fmt.Fprintf(&b, "%s %d/%d done\n\n", Dim("Progress:"), done, len(activities))
	b.WriteString(FormatActivityList(activities))
	return b.String()
}

// FormatJobTypeList renders job types as a table.
func FormatJobTypeList(jobTypes []*domain.JobType) string {
	headers := []string{"ID", "JOB TYPE"}
	rows := make([][]string, 0, len(jobTypes))
	for _, jt := range jobTypes {
		rows = append(rows, []string{Dim(truncateID(jt.ID)), jt.Name})
	}
	return RenderTable(headers, rows)
}

// FormatTemplateList renders a workflow's templates in schedule order.
func FormatTemplateList(templates []*domain.ActivityTemplate) string {
	headers := []string{"#", "ACTIVITY", "STAGE", "DAYS", "PRED"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		pred := Dim("-")
		if t.PredecessorSortOrder != nil {
			pred = fmt.Sprintf("%d %s", *t.PredecessorSortOrder, string(t.Relationship))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.SortOrder),
			t.Name,
			t.Stage,
			fmt.Sprintf("%d", t.EstimatedDays),
			pred,
		})
	}
	return RenderTable(headers, rows)
}
