package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedJob(t *testing.T, repos *repository.Repos) (*domain.Company, *domain.Job) {
	t.Helper()
	ctx := context.Background()
	company := testutil.NewTestCompany("Fletcher Homes")
	require.NoError(t, repos.Companies.Create(ctx, company))
	job := testutil.NewTestJob(company.ID, "12 Harbour View")
	require.NoError(t, repos.Jobs.Create(ctx, job))
	return company, job
}

func TestActivityRepo_RoundTrip(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	company, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 2, 5, "Footings",
		testutil.WithActivityPredecessor(1, domain.RelStartToStart),
		testutil.WithActivityDates(date(2025, 1, 6), date(2025, 1, 10)))
	a.Stage = "Structure"
	a.Consultant = "GeoTech Ltd"
	require.NoError(t, repos.Activities.Create(ctx, a))

	got, err := repos.Activities.GetByID(ctx, company.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Footings", got.Name)
	assert.Equal(t, "Structure", got.Stage)
	assert.Equal(t, "GeoTech Ltd", got.Consultant)
	assert.Equal(t, 5, got.EstimatedDays)
	require.NotNil(t, got.PredecessorSortOrder)
	assert.Equal(t, 1, *got.PredecessorSortOrder)
	assert.Equal(t, domain.RelStartToStart, got.Relationship)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, date(2025, 1, 6), *got.StartDate)
	assert.Equal(t, date(2025, 1, 10), *got.EndDate)
	assert.Equal(t, domain.ActivityNotStarted, got.Status)
	assert.Nil(t, got.TemplateID)
	assert.Nil(t, got.ParentID)
}

func TestActivityRepo_NullableFieldsStayNull(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	company, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 1, 3, "Manual entry")
	require.NoError(t, repos.Activities.Create(ctx, a))

	got, err := repos.Activities.GetByID(ctx, company.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PredecessorSortOrder)
	assert.Equal(t, domain.Relationship(""), got.Relationship)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
}

func TestActivityRepo_GetByID_ScopedByCompany(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, job := seedJob(t, repos)
	ctx := context.Background()

	other := testutil.NewTestCompany("Rival Builders")
	require.NoError(t, repos.Companies.Create(ctx, other))

	a := testutil.NewTestActivity(job.ID, 1, 3, "Footings")
	require.NoError(t, repos.Activities.Create(ctx, a))

	_, err := repos.Activities.GetByID(ctx, other.ID, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRepo_ListByJob_ParentsBeforeChildren(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, job := seedJob(t, repos)
	ctx := context.Background()

	p1 := testutil.NewTestActivity(job.ID, 1, 3, "Site establishment")
	p2 := testutil.NewTestActivity(job.ID, 2, 5, "Footings")
	require.NoError(t, repos.Activities.Create(ctx, p1))
	require.NoError(t, repos.Activities.Create(ctx, p2))
	c1 := testutil.NewTestActivity(job.ID, 1, 1, "Fencing", testutil.WithParent(p1.ID))
	require.NoError(t, repos.Activities.Create(ctx, c1))

	all, err := repos.Activities.ListByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Site establishment", all[0].Name)
	assert.Equal(t, "Footings", all[1].Name)
	assert.Equal(t, "Fencing", all[2].Name, "children list after all parents")

	top, err := repos.Activities.ListTopLevelByJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, top, 2)

	children, err := repos.Activities.ListChildren(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Fencing", children[0].Name)
}

func TestActivityRepo_UpdateDates(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	company, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 1, 3, "Footings",
		testutil.WithActivityDates(date(2025, 1, 6), date(2025, 1, 8)))
	a.Stage = "Structure"
	require.NoError(t, repos.Activities.Create(ctx, a))

	start, end := date(2025, 2, 3), date(2025, 2, 5)
	require.NoError(t, repos.Activities.UpdateDates(ctx, a.ID, &start, &end, time.Now().UTC()))

	got, err := repos.Activities.GetByID(ctx, company.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, start, *got.StartDate)
	assert.Equal(t, end, *got.EndDate)
	assert.Equal(t, "Structure", got.Stage, "only dates move")
}

func TestActivityRepo_UpdatePredecessor(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	company, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 2, 3, "Footings",
		testutil.WithActivityDates(date(2025, 1, 6), date(2025, 1, 8)))
	require.NoError(t, repos.Activities.Create(ctx, a))

	pred := 1
	require.NoError(t, repos.Activities.UpdatePredecessor(ctx, a.ID, &pred, domain.RelFinishToFinish, time.Now().UTC()))

	got, err := repos.Activities.GetByID(ctx, company.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PredecessorSortOrder)
	assert.Equal(t, 1, *got.PredecessorSortOrder)
	assert.Equal(t, domain.RelFinishToFinish, got.Relationship)
	assert.Equal(t, date(2025, 1, 6), *got.StartDate, "dates untouched")

	// Clearing the link nulls both columns.
	require.NoError(t, repos.Activities.UpdatePredecessor(ctx, a.ID, nil, "", time.Now().UTC()))
	got, err = repos.Activities.GetByID(ctx, company.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PredecessorSortOrder)
	assert.Equal(t, domain.Relationship(""), got.Relationship)
}

func TestActivityRepo_DeleteCascadesToChecklist(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 1, 3, "Footings")
	require.NoError(t, repos.Activities.Create(ctx, a))
	item := &domain.ActivityChecklistItem{ID: "item-1", ActivityID: a.ID, SortOrder: 1, Label: "Inspection booked"}
	require.NoError(t, repos.Checklists.Create(ctx, item))

	require.NoError(t, repos.Activities.Delete(ctx, a.ID))

	_, err := repos.Checklists.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChecklistRepo_CountOpenAndComplete(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, job := seedJob(t, repos)
	ctx := context.Background()

	a := testutil.NewTestActivity(job.ID, 1, 3, "Footings")
	require.NoError(t, repos.Activities.Create(ctx, a))
	item1 := &domain.ActivityChecklistItem{ID: "item-1", ActivityID: a.ID, SortOrder: 1, Label: "Inspection booked"}
	item2 := &domain.ActivityChecklistItem{ID: "item-2", ActivityID: a.ID, SortOrder: 2, Label: "Concrete ordered"}
	require.NoError(t, repos.Checklists.Create(ctx, item1))
	require.NoError(t, repos.Checklists.Create(ctx, item2))

	open, err := repos.Checklists.CountOpen(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, open)

	completedAt := time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC)
	require.NoError(t, repos.Checklists.Complete(ctx, item1.ID, completedAt))

	open, err = repos.Checklists.CountOpen(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, open)

	got, err := repos.Checklists.GetByID(ctx, item1.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, completedAt, *got.CompletedAt)

	err = repos.Checklists.Complete(ctx, "no-such-item", completedAt)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
