package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/storage"
	"github.com/hireai/portal/internal/utils"
	"github.com/hireai/portal/internal/wizard"
)

var photoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type CandidateService interface {
	List(ctx context.Context, token string, skip, limit int) ([]models.CandidateProfile, error)
	Get(ctx context.Context, token, id string) (*models.CandidateProfile, error)
	// UploadPhoto stores a candidate photo and puts its URL on the
	// recruiter's draft.
	UploadPhoto(ctx context.Context, browserID, contentType string, r io.Reader) (*wizard.State, error)
}

type candidateService struct {
	api      *client.Client
	uploader storage.Uploader
	wizard   WizardService
}

// NewCandidateService accepts a nil uploader; photo uploads then fail with
// CodeUnavailable.
func NewCandidateService(api *client.Client, uploader storage.Uploader, wz WizardService) CandidateService {
	return &candidateService{api: api, uploader: uploader, wizard: wz}
}

func (s *candidateService) List(ctx context.Context, token string, skip, limit int) ([]models.CandidateProfile, error) {
	out, err := s.api.WithToken(token).ListCandidates(ctx, skip, limit)
	return out, upstream("CandidateService.List", err)
}

func (s *candidateService) Get(ctx context.Context, token, id string) (*models.CandidateProfile, error) {
	const op = "CandidateService.Get"

	if err := requireID(op, id); err != nil {
		return nil, err
	}
	out, err := s.api.WithToken(token).GetCandidate(ctx, id)
	return out, upstream(op, err)
}

func (s *candidateService) UploadPhoto(ctx context.Context, browserID, contentType string, r io.Reader) (*wizard.State, error) {
	const op = "CandidateService.UploadPhoto"

	if s.uploader == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "photo upload is not configured", nil)
	}
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := photoTypes[contentType]
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("unsupported image type %q", contentType), nil)
	}

	// Fail before uploading when there is no draft to attach the photo to.
	if _, err := s.wizard.Get(ctx, FlowRecruiter, browserID); err != nil {
		return nil, err
	}

	name := path.Join("candidates", "photos", uuid.NewString()+ext)
	url, err := s.uploader.Upload(ctx, name, contentType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload photo", err)
	}

	return s.wizard.Apply(ctx, FlowRecruiter, browserID, []wizard.Mutation{
		{Op: "set", Path: "image_url", Value: url},
	})
}
