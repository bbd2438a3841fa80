package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/service"
	"github.com/mfletch/jobsite/internal/testutil"
)

func newJobFixture(t *testing.T) (*repository.Repos, service.JobService, *domain.Company) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := repository.NewRepos(database)
	svc := service.NewJobService(repos, nil)

	company := testutil.NewTestCompany("Fletcher Homes")
	require.NoError(t, repos.Companies.Create(context.Background(), company))
	return repos, svc, company
}

func TestJobService_Create(t *testing.T) {
	_, svc, company := newJobFixture(t)
	ctx := context.Background()

	j := &domain.Job{CompanyID: company.ID, Name: "12 Harbour View"}
	require.NoError(t, svc.Create(ctx, j))
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, domain.JobActive, j.Status)

	got, err := svc.GetByID(ctx, company.ID, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Harbour View", got.Name)
}

func TestJobService_Create_Validation(t *testing.T) {
	_, svc, company := newJobFixture(t)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Job{CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = svc.Create(ctx, &domain.Job{Name: "Orphan job"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	missing := "no-such-job-type"
	err = svc.Create(ctx, &domain.Job{CompanyID: company.ID, Name: "Bad link", JobTypeID: &missing})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestJobService_Create_WeekendStartClamped(t *testing.T) {
	_, svc, company := newJobFixture(t)
	ctx := context.Background()

	saturday := date(2025, 1, 4)
	j := &domain.Job{CompanyID: company.ID, Name: "Weekend start"}
	j.StartDate = &saturday
	require.NoError(t, svc.Create(ctx, j))
	assert.Equal(t, date(2025, 1, 6), *j.StartDate)
}

func TestJobService_SetStartDate(t *testing.T) {
	_, svc, company := newJobFixture(t)
	ctx := context.Background()

	j := &domain.Job{CompanyID: company.ID, Name: "12 Harbour View"}
	require.NoError(t, svc.Create(ctx, j))

	// Sunday rolls forward to Monday.
	require.NoError(t, svc.SetStartDate(ctx, company.ID, j.ID, date(2025, 1, 5)))

	got, err := svc.GetByID(ctx, company.ID, j.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, date(2025, 1, 6), *got.StartDate)
}

func TestJobService_List_ScopedByCompany(t *testing.T) {
	repos, svc, company := newJobFixture(t)
	ctx := context.Background()

	other := testutil.NewTestCompany("Rival Builders")
	require.NoError(t, repos.Companies.Create(ctx, other))

	require.NoError(t, svc.Create(ctx, &domain.Job{CompanyID: company.ID, Name: "Ours"}))
	require.NoError(t, svc.Create(ctx, &domain.Job{CompanyID: other.ID, Name: "Theirs"}))

	ours, err := svc.List(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, ours, 1)
	assert.Equal(t, "Ours", ours[0].Name)

	_, err = svc.GetByID(ctx, company.ID, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
