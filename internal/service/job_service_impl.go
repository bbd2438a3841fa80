package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mfletch/jobsite/internal/domain"
	"github.com/mfletch/jobsite/internal/repository"
	"github.com/mfletch/jobsite/internal/schedule"
)

type jobService struct {
	repos  *repository.Repos
	logger *slog.Logger
	now    func() time.Time
}

// NewJobService creates the job management service.
func NewJobService(repos *repository.Repos, logger *slog.Logger) JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &jobService{
		repos:  repos,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *jobService) Create(ctx context.Context, j *domain.Job) error {
	if j.Name == "" {
		return fmt.Errorf("%w: job name is required", domain.ErrInvalidState)
	}
	if j.CompanyID == "" {
		return fmt.Errorf("%w: job must belong to a company", domain.ErrInvalidState)
	}
	if j.JobTypeID != nil {
		if _, err := s.repos.JobTypes.GetByID(ctx, j.CompanyID, *j.JobTypeID); err != nil {
			return err
		}
	}
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	if j.Status == "" {
		j.Status = domain.JobActive
	}
	if j.StartDate != nil {
		start := schedule.EnsureWorkingDay(*j.StartDate)
		j.StartDate = &start
	}
	now := s.now()
	j.CreatedAt = now
	j.UpdatedAt = now
	return s.repos.Jobs.Create(ctx, j)
}

func (s *jobService) GetByID(ctx context.Context, companyID, id string) (*domain.Job, error) {
	return s.repos.Jobs.GetByID(ctx, companyID, id)
}

func (s *jobService) List(ctx context.Context, companyID string) ([]*domain.Job, error) {
	return s.repos.Jobs.List(ctx, companyID)
}

// SetStartDate moves a job's start, clamping to the next working day when
// the given date lands on a weekend. Activity dates do not move until the
// caller recalculates.
func (s *jobService) SetStartDate(ctx context.Context, companyID, id string, start time.Time) error {
	j, err := s.repos.Jobs.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	clamped := schedule.EnsureWorkingDay(start)
	j.StartDate = &clamped
	j.UpdatedAt = s.now()
	return s.repos.Jobs.Update(ctx, j)
}
