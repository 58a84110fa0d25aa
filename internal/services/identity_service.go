package services

import (
	"context"
	"strings"

	"github.com/hireai/portal/internal/cache"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/guard"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/session"
	"github.com/hireai/portal/internal/storage"
	"github.com/hireai/portal/internal/utils"
)

// LoginOutcome is the session after a login and where the browser goes next.
type LoginOutcome struct {
	Session  models.SessionState `json:"session"`
	Redirect string              `json:"redirect"`
}

type IdentityService interface {
	// Session opens and hydrates the session store of a browser. The store
	// is returned even when hydration fails.
	Session(ctx context.Context, browserID string) (*session.Store, error)
	Login(ctx context.Context, browserID string, req client.LoginRequest) (*LoginOutcome, error)
	// LoginWithToken completes a Google or Microsoft sign-in from the token
	// the provider callback carries.
	LoginWithToken(ctx context.Context, browserID, token string) (*LoginOutcome, error)
	Logout(ctx context.Context, browserID string) error
	Refresh(ctx context.Context, browserID string) (models.SessionState, error)

	Signup(ctx context.Context, req client.SignupRequest) (*models.User, error)
	SendOTP(ctx context.Context, req client.SendOTPRequest) (*client.Ack, error)
	VerifyOTP(ctx context.Context, req client.VerifyOTPRequest) (*client.Ack, error)
	ResetPassword(ctx context.Context, req client.ResetPasswordRequest) (*client.Ack, error)
}

type identityService struct {
	api    *client.Client
	store  storage.Backend
	drafts cache.Cache
}

func NewIdentityService(api *client.Client, store storage.Backend, drafts cache.Cache) IdentityService {
	return &identityService{api: api, store: store, drafts: drafts}
}

func (s *identityService) Session(ctx context.Context, browserID string) (*session.Store, error) {
	const op = "IdentityService.Session"

	if strings.TrimSpace(browserID) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "browser id is required", nil)
	}
	st := session.New(s.store.For(browserID))
	if err := st.Hydrate(ctx); err != nil {
		return st, err
	}
	return st, nil
}

func (s *identityService) Login(ctx context.Context, browserID string, req client.LoginRequest) (*LoginOutcome, error) {
	const op = "IdentityService.Login"

	st, err := s.Session(ctx, browserID)
	if err != nil && st == nil {
		return nil, err
	}

	res, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, upstream(op, err)
	}
	if err := st.Login(ctx, *res); err != nil {
		return nil, err
	}

	state := st.State()
	return &LoginOutcome{Session: state, Redirect: guard.HomeRoute(state.Role)}, nil
}

func (s *identityService) LoginWithToken(ctx context.Context, browserID, token string) (*LoginOutcome, error) {
	st, err := s.Session(ctx, browserID)
	if err != nil && st == nil {
		return nil, err
	}
	if err := st.LoginWithToken(ctx, token); err != nil {
		return nil, err
	}

	state := st.State()
	return &LoginOutcome{Session: state, Redirect: guard.HomeRoute(state.Role)}, nil
}

// Logout forgets the session and any wizard draft of the browser.
func (s *identityService) Logout(ctx context.Context, browserID string) error {
	const op = "IdentityService.Logout"

	st, err := s.Session(ctx, browserID)
	if err != nil && st == nil {
		return err
	}
	if err := st.Logout(ctx); err != nil {
		return err
	}
	if err := s.drafts.Del(ctx, cache.WizardKey(FlowCandidate, browserID), cache.WizardKey(FlowRecruiter, browserID)); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to discard drafts", err)
	}
	return nil
}

// Refresh reloads the user record from the backend. A token the backend no
// longer accepts ends the session.
func (s *identityService) Refresh(ctx context.Context, browserID string) (models.SessionState, error) {
	const op = "IdentityService.Refresh"

	st, err := s.Session(ctx, browserID)
	if err != nil {
		return models.SessionState{}, err
	}
	cur := st.State()
	if !cur.Authenticated {
		return cur, nil
	}

	u, err := s.api.WithToken(cur.Token).Me(ctx)
	if err != nil {
		err = upstream(op, err)
		if utils.IsCode(err, utils.CodeUnauthorized) {
			if lerr := st.Logout(ctx); lerr != nil {
				return cur, lerr
			}
			return st.State(), nil
		}
		return cur, err
	}
	if err := st.Login(ctx, models.LoginResult{AccessToken: cur.Token, User: *u}); err != nil {
		return cur, err
	}
	return st.State(), nil
}

func (s *identityService) Signup(ctx context.Context, req client.SignupRequest) (*models.User, error) {
	u, err := s.api.Signup(ctx, req)
	return u, upstream("IdentityService.Signup", err)
}

func (s *identityService) SendOTP(ctx context.Context, req client.SendOTPRequest) (*client.Ack, error) {
	ack, err := s.api.SendOTP(ctx, req)
	return ack, upstream("IdentityService.SendOTP", err)
}

func (s *identityService) VerifyOTP(ctx context.Context, req client.VerifyOTPRequest) (*client.Ack, error) {
	ack, err := s.api.VerifyOTP(ctx, req)
	return ack, upstream("IdentityService.VerifyOTP", err)
}

func (s *identityService) ResetPassword(ctx context.Context, req client.ResetPasswordRequest) (*client.Ack, error) {
	ack, err := s.api.ResetPassword(ctx, req)
	return ack, upstream("IdentityService.ResetPassword", err)
}
