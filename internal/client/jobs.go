package client

import (
	"context"
	"net/http"

	"github.com/hireai/portal/internal/models"
)

// CreateJob posts the recruiter's inputs. The backend generates the
// description before answering, so this call can be slow.
func (c *Client) CreateJob(ctx context.Context, p models.JobPayload) (*models.Job, error) {
	if err := check("client.CreateJob", p); err != nil {
		return nil, err
	}
	var out models.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, p, &out, "Failed to generate job description"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListJobs(ctx context.Context, skip, limit int) ([]models.Job, error) {
	var out []models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", page(skip, limit), nil, &out, "Failed to fetch jobs"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListJobsByUser(ctx context.Context, userID string) ([]models.Job, error) {
	var out []models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/users/"+pathID(userID), nil, nil, &out, "Failed to fetch jobs"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var out models.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+pathID(id), nil, nil, &out, "Failed to fetch job details"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, p models.JobPayload) (*models.Job, error) {
	if err := check("client.UpdateJob", p); err != nil {
		return nil, err
	}
	var out models.Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+pathID(id), nil, p, &out, "Failed to update job"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+pathID(id), nil, nil, nil, "Failed to delete job")
}
