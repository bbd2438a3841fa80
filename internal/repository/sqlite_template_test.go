package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/testutil"
)

func seedJobType(t *testing.T, repos *repository.Repos) (*domain.Company, *domain.JobType) {
	t.Helper()
	ctx := context.Background()
	company := testutil.NewTestCompany("Fletcher Homes")
	require.NoError(t, repos.Companies.Create(ctx, company))
	jt := testutil.NewTestJobType(company.ID, "New Build")
	require.NoError(t, repos.JobTypes.Create(ctx, jt))
	return company, jt
}

func TestTemplateRepo_RoundTrip(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate(jt.ID, 2, 5, "Footings",
		testutil.WithPredecessor(1, domain.RelFinishToStart),
		testutil.WithStage("Structure"),
		testutil.WithConsultant("GeoTech Ltd"))
	require.NoError(t, repos.Templates.Create(ctx, tmpl))

	got, err := repos.Templates.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Footings", got.Name)
	assert.Equal(t, "Structure", got.Stage)
	assert.Equal(t, "GeoTech Ltd", got.Consultant)
	assert.Equal(t, 5, got.EstimatedDays)
	require.NotNil(t, got.PredecessorSortOrder)
	assert.Equal(t, 1, *got.PredecessorSortOrder)
	assert.Equal(t, domain.RelFinishToStart, got.Relationship)
}

func TestTemplateRepo_ListByJobType_OrderedBySortOrder(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	// Inserted out of order on purpose.
	require.NoError(t, repos.Templates.Create(ctx, testutil.NewTestTemplate(jt.ID, 3, 2, "Drainage")))
	require.NoError(t, repos.Templates.Create(ctx, testutil.NewTestTemplate(jt.ID, 1, 5, "Site establishment")))
	require.NoError(t, repos.Templates.Create(ctx, testutil.NewTestTemplate(jt.ID, 2, 3, "Footings")))

	templates, err := repos.Templates.ListByJobType(ctx, jt.ID)
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{templates[0].SortOrder, templates[1].SortOrder, templates[2].SortOrder})
}

func TestTemplateRepo_Update(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate(jt.ID, 1, 3, "Footings")
	require.NoError(t, repos.Templates.Create(ctx, tmpl))

	tmpl.Name = "Footings and slab"
	tmpl.EstimatedDays = 6
	require.NoError(t, repos.Templates.Update(ctx, tmpl))

	got, err := repos.Templates.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Footings and slab", got.Name)
	assert.Equal(t, 6, got.EstimatedDays)
}

func TestTemplateRepo_SubtasksAndChecklist(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate(jt.ID, 1, 5, "Site establishment")
	require.NoError(t, repos.Templates.Create(ctx, tmpl))

	require.NoError(t, repos.Templates.CreateSubtask(ctx, testutil.NewTestSubtask(tmpl.ID, 2, 1, "Site office")))
	require.NoError(t, repos.Templates.CreateSubtask(ctx, testutil.NewTestSubtask(tmpl.ID, 1, 2, "Fencing")))

	subtasks, err := repos.Templates.ListSubtasks(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, subtasks, 2)
	assert.Equal(t, "Fencing", subtasks[0].Name, "ordered by sort order")
	assert.Equal(t, "Site office", subtasks[1].Name)

	require.NoError(t, repos.Templates.CreateChecklistItem(ctx, testutil.NewTestChecklistItem(tmpl.ID, 1, "Permit issued")))
	items, err := repos.Templates.ListChecklistItems(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Permit issued", items[0].Label)
}

func TestTemplateRepo_DeleteCascadesToChildren(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	tmpl := testutil.NewTestTemplate(jt.ID, 1, 5, "Site establishment")
	require.NoError(t, repos.Templates.Create(ctx, tmpl))
	require.NoError(t, repos.Templates.CreateSubtask(ctx, testutil.NewTestSubtask(tmpl.ID, 1, 2, "Fencing")))

	require.NoError(t, repos.Templates.Delete(ctx, tmpl.ID))

	_, err := repos.Templates.GetByID(ctx, tmpl.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	subtasks, err := repos.Templates.ListSubtasks(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Empty(t, subtasks)
}

func TestJobTypeRepo_ScopedByCompany(t *testing.T) {
	repos := repository.NewRepos(testutil.NewTestDB(t))
	_, jt := seedJobType(t, repos)
	ctx := context.Background()

	other := testutil.NewTestCompany("Rival Builders")
	require.NoError(t, repos.Companies.Create(ctx, other))

	_, err := repos.JobTypes.GetByID(ctx, other.ID, jt.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	listed, err := repos.JobTypes.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
