package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hireai/portal/internal/cache"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/utils"
	"github.com/hireai/portal/internal/wizard"
)

// Wizard flows. A candidate edits their own profile; a recruiter creates
// one on a candidate's behalf. Each flow keeps its own draft per browser.
const (
	FlowCandidate = "candidate"
	FlowRecruiter = "recruiter"
)

// StepResult is the answer to Next and Back.
type StepResult struct {
	Outcome wizard.Outcome `json:"outcome,omitempty"`
	Moved   bool           `json:"moved"`
	State   wizard.State   `json:"state"`
}

type WizardService interface {
	Start(ctx context.Context, flow, browserID string, seed *wizard.Draft) (*wizard.State, error)
	Get(ctx context.Context, flow, browserID string) (*wizard.State, error)
	Apply(ctx context.Context, flow, browserID string, muts []wizard.Mutation) (*wizard.State, error)
	// Next submits on the last section with token as the bearer. A
	// rejected submission returns the result along with the error.
	Next(ctx context.Context, flow, browserID, token string) (*StepResult, error)
	Back(ctx context.Context, flow, browserID string) (*StepResult, error)
	Discard(ctx context.Context, flow, browserID string) error
}

type wizardService struct {
	drafts cache.Cache
	api    *client.Client
	ttl    time.Duration
}

func NewWizardService(drafts cache.Cache, api *client.Client, ttl time.Duration) WizardService {
	return &wizardService{drafts: drafts, api: api, ttl: ttl}
}

// profileSubmitter posts a finished draft to POST /candidates.
type profileSubmitter struct {
	api *client.Client
}

func (p profileSubmitter) SubmitProfile(ctx context.Context, payload wizard.Payload) error {
	_, err := p.api.CreateCandidateProfile(ctx, payload)
	return err
}

func checkFlow(op, flow, browserID string) error {
	if flow != FlowCandidate && flow != FlowRecruiter {
		return utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("unknown wizard flow %q", flow), nil)
	}
	if browserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "browser id is required", nil)
	}
	return nil
}

func (s *wizardService) load(ctx context.Context, op, flow, browserID string) (*wizard.State, error) {
	if err := checkFlow(op, flow, browserID); err != nil {
		return nil, err
	}
	var st wizard.State
	hit, err := s.drafts.GetJSON(ctx, cache.WizardKey(flow, browserID), &st)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load draft", err)
	}
	if !hit {
		return nil, utils.E(utils.CodeNotFound, op, "no profile draft in progress", nil)
	}
	return &st, nil
}

func (s *wizardService) save(ctx context.Context, op, flow, browserID string, st wizard.State) error {
	if err := s.drafts.SetJSON(ctx, cache.WizardKey(flow, browserID), st, s.ttl); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to save draft", err)
	}
	return nil
}

// Start replaces any draft in progress. A nil seed starts from a blank
// draft; edit mode passes the existing profile.
func (s *wizardService) Start(ctx context.Context, flow, browserID string, seed *wizard.Draft) (*wizard.State, error) {
	const op = "WizardService.Start"

	if err := checkFlow(op, flow, browserID); err != nil {
		return nil, err
	}
	st := wizard.NewController(seed, nil).State()
	if err := s.save(ctx, op, flow, browserID, st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *wizardService) Get(ctx context.Context, flow, browserID string) (*wizard.State, error) {
	return s.load(ctx, "WizardService.Get", flow, browserID)
}

// Apply runs muts in order. The first failing mutation aborts the batch and
// nothing is saved.
func (s *wizardService) Apply(ctx context.Context, flow, browserID string, muts []wizard.Mutation) (*wizard.State, error) {
	const op = "WizardService.Apply"

	cur, err := s.load(ctx, op, flow, browserID)
	if err != nil {
		return nil, err
	}
	c := wizard.Restore(*cur, nil)
	for i, m := range muts {
		if err := c.Update(m.Apply); err != nil {
			if errors.Is(err, wizard.ErrSubmitted) {
				return nil, utils.E(utils.CodeConflict, op, "profile already submitted", err)
			}
			return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("change %d: %v", i, err), err)
		}
	}

	st := c.State()
	if err := s.save(ctx, op, flow, browserID, st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *wizardService) Next(ctx context.Context, flow, browserID, token string) (*StepResult, error) {
	const op = "WizardService.Next"

	cur, err := s.load(ctx, op, flow, browserID)
	if err != nil {
		return nil, err
	}
	c := wizard.Restore(*cur, profileSubmitter{api: s.api.WithToken(token)})

	out, err := c.Next(ctx)
	switch {
	case errors.Is(err, wizard.ErrSubmitted):
		return nil, utils.E(utils.CodeConflict, op, "profile already submitted", err)
	case out == wizard.Submitted:
		if derr := s.drafts.Del(ctx, cache.WizardKey(flow, browserID)); derr != nil {
			return nil, utils.E(utils.CodeUnavailable, op, "failed to clear draft", derr)
		}
		return &StepResult{Outcome: out, Moved: true, State: c.State()}, nil
	}

	res := &StepResult{Outcome: out, Moved: out == wizard.Advanced, State: c.State()}
	if serr := s.save(ctx, op, flow, browserID, res.State); serr != nil {
		return nil, serr
	}
	if out == wizard.SubmitFailed {
		return res, upstream(op, err)
	}
	return res, nil
}

func (s *wizardService) Back(ctx context.Context, flow, browserID string) (*StepResult, error) {
	const op = "WizardService.Back"

	cur, err := s.load(ctx, op, flow, browserID)
	if err != nil {
		return nil, err
	}
	c := wizard.Restore(*cur, nil)
	moved := c.Back()

	res := &StepResult{Moved: moved, State: c.State()}
	if moved {
		if err := s.save(ctx, op, flow, browserID, res.State); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *wizardService) Discard(ctx context.Context, flow, browserID string) error {
	const op = "WizardService.Discard"

	if err := checkFlow(op, flow, browserID); err != nil {
		return err
	}
	if err := s.drafts.Del(ctx, cache.WizardKey(flow, browserID)); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to discard draft", err)
	}
	return nil
}
