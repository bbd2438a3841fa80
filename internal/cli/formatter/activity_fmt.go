package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mfletch/jobsite/internal/domain"
)

const displayDateLayout = "Mon 02 Jan"

// FormatActivityList renders a job's activities as a table. Subtasks are
// indented under their parent; the list is expected in parents-first order.
func FormatActivityList(activities []*domain.JobActivity) string {
	byParent := make(map[string][]*domain.JobActivity)
	var parents []*domain.JobActivity
	for _, a := range activities {
		if a.ParentID != nil {
			byParent[*a.ParentID] = append(byParent[*a.ParentID], a)
			continue
		}
		parents = append(parents, a)
	}

	headers := []string{"ID", "ACTIVITY", "DAYS", "START", "END", "PRED", "STATUS"}
	var rows [][]string
	for _, p := range parents {
		rows = append(rows, activityRow(p, ""))
		for _, c := range byParent[p.ID] {
			rows = append(rows, activityRow(c, "  "))
		}
	}
	return RenderTable(headers, rows)
}

func activityRow(a *domain.JobActivity, indent string) []string {
	return []string{
		Dim(truncateID(a.ID)),
		indent + a.Name,
		fmt.Sprintf("%d", a.EstimatedDays),
		formatDatePtr(a.StartDate),
		formatDatePtr(a.EndDate),
		formatPredecessor(a),
		StatusLabel(a.Status),
	}
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return Dim("-")
	}
	return t.Format(displayDateLayout)
}

func formatPredecessor(a *domain.JobActivity) string {
	if a.PredecessorSortOrder == nil {
		return Dim("-")
	}
	return fmt.Sprintf("%d %s", *a.PredecessorSortOrder, string(a.Relationship))
}

// FormatChecklist renders an activity's checklist with completion marks.
func FormatChecklist(items []*domain.ActivityChecklistItem) string {
	var b strings.Builder
	done := 0
	for _, item := range items {
		mark := Dim("[ ]")
		if item.Completed {
			mark = StyleGreen.Render("[x]")
			done++
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, item.Label, Dim(truncateID(item.ID)))
	}
	fmt.Fprintf(&b, "%d of %d complete", done, len(items))
	return b.String()
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
