// Package session keeps the identity of one browser: the access token and
// user record, persisted to that browser's local storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/storage"
	"github.com/hireai/portal/internal/utils"
)

// Storage keys.
const (
	KeyToken = "access_token"
	KeyUser  = "user"
)

type Store struct {
	ls  storage.LocalStorage
	now func() time.Time

	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool
}

// New returns a store that reports Loading until Hydrate has run.
func New(ls storage.LocalStorage) *Store {
	return &Store{ls: ls, now: time.Now, loading: true}
}

// Hydrate reads the persisted token and user once. The session is only
// populated when both keys are present, the user decodes and the token has
// not expired. Loading is cleared whatever the result.
func (s *Store) Hydrate(ctx context.Context) error {
	const op = "session.Hydrate"

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loading {
		return nil
	}
	defer func() { s.loading = false }()

	tok, err := s.ls.GetItem(ctx, KeyToken)
	if errors.Is(err, storage.ErrNoItem) {
		return nil
	}
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to read session", err)
	}
	raw, err := s.ls.GetItem(ctx, KeyUser)
	if errors.Is(err, storage.ErrNoItem) {
		return nil
	}
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to read session", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || strings.TrimSpace(tok) == "" {
		return nil
	}

	if expired(tok, s.now()) {
		if err := s.clear(ctx); err != nil {
			return utils.E(utils.CodeUnavailable, op, "failed to clear expired session", err)
		}
		return nil
	}

	s.token = tok
	s.user = &u
	return nil
}

// Login persists a successful login result and makes it the current session.
func (s *Store) Login(ctx context.Context, res models.LoginResult) error {
	const op = "session.Login"

	if strings.TrimSpace(res.AccessToken) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "login result has no access token", nil)
	}
	b, err := json.Marshal(res.User)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode user", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ls.SetItem(ctx, KeyToken, res.AccessToken); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to save session", err)
	}
	if err := s.ls.SetItem(ctx, KeyUser, string(b)); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to save session", err)
	}

	u := res.User
	s.token = res.AccessToken
	s.user = &u
	s.loading = false
	return nil
}

// LoginWithToken signs in with a bare access token, as handed back by an
// external sign-in provider. The user record is read from the token claims.
func (s *Store) LoginWithToken(ctx context.Context, tok string) error {
	const op = "session.LoginWithToken"

	tok = strings.TrimSpace(tok)
	claims, ok := parseClaims(tok)
	if !ok {
		return utils.E(utils.CodeInvalidArgument, op, "invalid sign-in token", nil)
	}
	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return utils.E(utils.CodeUnauthorized, op, "sign-in token has expired", nil)
	}
	return s.Login(ctx, models.LoginResult{AccessToken: tok, TokenType: "bearer", User: userFromClaims(claims)})
}

// Logout forgets the session in memory and in storage.
func (s *Store) Logout(ctx context.Context) error {
	const op = "session.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err := s.clear(ctx); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to clear session", err)
	}
	return nil
}

// clear expects s.mu to be held.
func (s *Store) clear(ctx context.Context) error {
	s.token = ""
	s.user = nil
	if err := s.ls.RemoveItem(ctx, KeyToken); err != nil {
		return err
	}
	return s.ls.RemoveItem(ctx, KeyUser)
}

func (s *Store) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.SessionState{Loading: s.loading}
	if s.user == nil || s.token == "" || expired(s.token, s.now()) {
		return st
	}

	u := *s.user
	st.Token = s.token
	st.User = &u
	st.Authenticated = true
	st.Role = models.ParseRole(string(u.Role))
	if st.Role == "" {
		st.Role = tokenRole(s.token)
	}
	return st
}

// Token returns the bearer token of an authenticated session, or "".
func (s *Store) Token() string {
	return s.State().Token
}
