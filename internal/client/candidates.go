package client

import (
	"context"
	"net/http"

	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/wizard"
)

func (c *Client) CreateCandidateProfile(ctx context.Context, p wizard.Payload) (*models.CandidateCreated, error) {
	var out models.CandidateCreated
	if err := c.do(ctx, http.MethodPost, "/candidates", nil, p, &out, "Failed to create profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCandidates(ctx context.Context, skip, limit int) ([]models.CandidateProfile, error) {
	var out []models.CandidateProfile
	if err := c.do(ctx, http.MethodGet, "/candidates", page(skip, limit), nil, &out, "Failed to fetch candidates"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	var out models.CandidateProfile
	if err := c.do(ctx, http.MethodGet, "/candidates/"+pathID(id), nil, nil, &out, "Failed to fetch candidate details"); err != nil {
		return nil, err
	}
	return &out, nil
}
