package services

import (
	"context"
	"strings"

	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/utils"
)

// JobService proxies job calls with the caller's bearer token. Description
// generation happens on the backend inside Create and Update.
type JobService interface {
	List(ctx context.Context, token string, skip, limit int) ([]models.Job, error)
	ListByUser(ctx context.Context, token, userID string) ([]models.Job, error)
	Get(ctx context.Context, token, id string) (*models.Job, error)
	Create(ctx context.Context, token string, p models.JobPayload) (*models.Job, error)
	Update(ctx context.Context, token, id string, p models.JobPayload) (*models.Job, error)
	Delete(ctx context.Context, token, id string) error
}

type jobService struct {
	api *client.Client
}

func NewJobService(api *client.Client) JobService {
	return &jobService{api: api}
}

func requireID(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	return nil
}

func (s *jobService) List(ctx context.Context, token string, skip, limit int) ([]models.Job, error) {
	jobs, err := s.api.WithToken(token).ListJobs(ctx, skip, limit)
	return jobs, upstream("JobService.List", err)
}

func (s *jobService) ListByUser(ctx context.Context, token, userID string) ([]models.Job, error) {
	const op = "JobService.ListByUser"

	if err := requireID(op, userID); err != nil {
		return nil, err
	}
	jobs, err := s.api.WithToken(token).ListJobsByUser(ctx, userID)
	return jobs, upstream(op, err)
}

func (s *jobService) Get(ctx context.Context, token, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if err := requireID(op, id); err != nil {
		return nil, err
	}
	job, err := s.api.WithToken(token).GetJob(ctx, id)
	return job, upstream(op, err)
}

func (s *jobService) Create(ctx context.Context, token string, p models.JobPayload) (*models.Job, error) {
	job, err := s.api.WithToken(token).CreateJob(ctx, p)
	return job, upstream("JobService.Create", err)
}

func (s *jobService) Update(ctx context.Context, token, id string, p models.JobPayload) (*models.Job, error) {
	const op = "JobService.Update"

	if err := requireID(op, id); err != nil {
		return nil, err
	}
	job, err := s.api.WithToken(token).UpdateJob(ctx, id, p)
	return job, upstream(op, err)
}

func (s *jobService) Delete(ctx context.Context, token, id string) error {
	const op = "JobService.Delete"

	if err := requireID(op, id); err != nil {
		return err
	}
	return upstream(op, s.api.WithToken(token).DeleteJob(ctx, id))
}
