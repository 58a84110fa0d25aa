package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/storage"
	"github.com/hireai/portal/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(exp)},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func recruiter() models.User {
	return models.User{ID: "u1", Email: "r@example.com", Username: "rec", Role: models.RoleRecruiter, IsActive: true}
}

func TestNewStoreIsLoading(t *testing.T) {
	s := New(storage.NewMemoryBackend().For("b1"))
	st := s.State()
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated)
}

func TestHydrateEmptyStorage(t *testing.T) {
	s := New(storage.NewMemoryBackend().For("b1"))
	require.NoError(t, s.Hydrate(context.Background()))

	st := s.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
}

func TestHydrateNeedsBothKeys(t *testing.T) {
	ctx := context.Background()
	ls := storage.NewMemoryBackend().For("b1")
	require.NoError(t, ls.SetItem(ctx, KeyToken, "opaque"))

	s := New(ls)
	require.NoError(t, s.Hydrate(ctx))
	assert.False(t, s.State().Authenticated)

	ls2 := storage.NewMemoryBackend().For("b2")
	require.NoError(t, ls2.SetItem(ctx, KeyUser, `{"id":"u1","role":"candidate"}`))
	s2 := New(ls2)
	require.NoError(t, s2.Hydrate(ctx))
	assert.False(t, s2.State().Authenticated)
}

func TestHydrateBadUserRecord(t *testing.T) {
	ctx := context.Background()
	ls := storage.NewMemoryBackend().For("b1")
	require.NoError(t, ls.SetItem(ctx, KeyToken, "opaque"))
	require.NoError(t, ls.SetItem(ctx, KeyUser, "{not json"))

	s := New(ls)
	require.NoError(t, s.Hydrate(ctx))
	st := s.State()
	assert.False(t, st.Loading)
	assert.False(t, st.Authenticated)
}

func TestLoginPersistsAndRehydrates(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()

	s := New(backend.For("b1"))
	require.NoError(t, s.Login(ctx, models.LoginResult{AccessToken: "opaque-token", User: recruiter()}))

	st := s.State()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	assert.Equal(t, models.RoleRecruiter, st.Role)
	assert.Equal(t, "opaque-token", s.Token())

	raw, err := backend.For("b1").GetItem(ctx, KeyUser)
	require.NoError(t, err)
	assert.Contains(t, raw, `"role":"recruiter"`)

	again := New(backend.For("b1"))
	require.NoError(t, again.Hydrate(ctx))
	st = again.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := New(storage.NewMemoryBackend().For("b1"))
	err := s.Login(context.Background(), models.LoginResult{User: recruiter()})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.False(t, s.State().Authenticated)
}

func TestLogoutClearsStorage(t *testing.T) {
	ctx := context.Background()
	ls := storage.NewMemoryBackend().For("b1")
	s := New(ls)
	require.NoError(t, s.Login(ctx, models.LoginResult{AccessToken: "t", User: recruiter()}))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.State().Authenticated)
	_, err := ls.GetItem(ctx, KeyToken)
	assert.ErrorIs(t, err, storage.ErrNoItem)
	_, err = ls.GetItem(ctx, KeyUser)
	assert.ErrorIs(t, err, storage.ErrNoItem)
}

func TestExpiredTokenIsDropped(t *testing.T) {
	ctx := context.Background()
	ls := storage.NewMemoryBackend().For("b1")
	s := New(ls)
	require.NoError(t, s.Login(ctx, models.LoginResult{AccessToken: signed(t, "recruiter", time.Now().Add(-time.Minute)), User: recruiter()}))
	assert.False(t, s.State().Authenticated)

	again := New(ls)
	require.NoError(t, again.Hydrate(ctx))
	assert.False(t, again.State().Authenticated)
	_, err := ls.GetItem(ctx, KeyToken)
	assert.ErrorIs(t, err, storage.ErrNoItem)
}

func TestTokenExpiresWhileHeld(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryBackend().For("b1"))
	exp := time.Now().Add(time.Hour)
	require.NoError(t, s.Login(ctx, models.LoginResult{AccessToken: signed(t, "", exp), User: recruiter()}))
	assert.True(t, s.State().Authenticated)

	s.now = func() time.Time { return exp.Add(time.Second) }
	assert.False(t, s.State().Authenticated)
	assert.Empty(t, s.Token())
}

func TestRoleFallsBackToTokenClaim(t *testing.T) {
	u := recruiter()
	u.Role = ""
	s := New(storage.NewMemoryBackend().For("b1"))
	require.NoError(t, s.Login(context.Background(), models.LoginResult{
		AccessToken: signed(t, "candidate", time.Now().Add(time.Hour)),
		User:        u,
	}))
	assert.Equal(t, models.RoleCandidate, s.State().Role)
}

type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("connection refused")
}
func (failingStorage) RemoveItem(context.Context, string) error {
	return errors.New("connection refused")
}

func TestHydrateStorageFailureStillClearsLoading(t *testing.T) {
	s := New(failingStorage{})
	err := s.Hydrate(context.Background())
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.False(t, s.State().Loading)
}

func providerToken(t *testing.T, email, role string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role:             role,
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "g-42", ExpiresAt: jwt.NewNumericDate(exp)},
	}).SignedString([]byte("provider-secret"))
	require.NoError(t, err)
	return tok
}

func TestLoginWithToken(t *testing.T) {
	ctx := context.Background()
	ls := storage.NewMemoryBackend().For("b1")
	s := New(ls)

	tok := providerToken(t, "grace@example.com", "", time.Now().Add(time.Hour))
	require.NoError(t, s.LoginWithToken(ctx, tok))

	st := s.State()
	require.True(t, st.Authenticated)
	assert.Equal(t, models.RoleRecruiter, st.Role)
	assert.Equal(t, models.User{
		ID: "g-42", Email: "grace@example.com", Username: "grace", FullName: "grace",
		IsActive: true, Role: models.RoleRecruiter,
	}, *st.User)

	saved, err := ls.GetItem(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, tok, saved)

	require.NoError(t, s.LoginWithToken(ctx, providerToken(t, "c@example.com", "Candidate", time.Now().Add(time.Hour))))
	assert.Equal(t, models.RoleCandidate, s.State().Role)
}

func TestLoginWithTokenRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryBackend().For("b1"))

	err := s.LoginWithToken(ctx, "not-a-jwt")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	err = s.LoginWithToken(ctx, providerToken(t, "a@b.co", "recruiter", time.Now().Add(-time.Minute)))
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.False(t, s.State().Authenticated)
}
