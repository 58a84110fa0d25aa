package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hireai/portal/internal/cache"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/storage"
	"github.com/hireai/portal/internal/utils"
	"github.com/hireai/portal/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records requests and answers from a route table.
type fakeBackend struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []map[string]any
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeBackend(t *testing.T) (*fakeBackend, *client.Client) {
	t.Helper()
	fb := &fakeBackend{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		r.Body = io.NopCloser(bytes.NewReader(raw))

		fb.mu.Lock()
		fb.requests = append(fb.requests, r)
		fb.bodies = append(fb.bodies, body)
		h, ok := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, client.New(srv.URL)
}

func (fb *fakeBackend) on(route string, status int, body any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (fb *fakeBackend) count(route string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, r := range fb.requests {
		if r.Method+" "+r.URL.Path == route {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) last() (*http.Request, map[string]any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	i := len(fb.requests) - 1
	return fb.requests[i], fb.bodies[i]
}

func fillDraft(t *testing.T, svc WizardService, browserID string) {
	t.Helper()
	_, err := svc.Apply(context.Background(), FlowCandidate, browserID, []wizard.Mutation{
		{Op: "set", Path: "title", Value: "Backend Engineer"},
		{Op: "set", Path: "full_name", Value: "Ada Lovelace"},
		{Op: "set", Path: "contact.phone", Value: "612345678"},
		{Op: "set", Path: "contact.email", Value: "ada@example.com"},
		{Op: "set", Path: "contact.location", Value: "Amsterdam"},
		{Op: "set", Path: "contact.pincode", Value: "1011AB"},
		{Op: "set", Path: "education[0].years", Value: "2015-2019"},
		{Op: "set", Path: "education[0].institution", Value: "TU Delft"},
		{Op: "set", Path: "education[0].degree", Value: "BSc"},
		{Op: "add_tag", Path: "skills", Value: "Go"},
		{Op: "add_tag", Path: "languages", Value: "English"},
		{Op: "set", Path: "profile", Value: "Engineer who builds backend services."},
	})
	require.NoError(t, err)
}

func TestWizardServiceWalkAndSubmit(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("POST /candidates", http.StatusCreated, map[string]any{"profile": map[string]any{"id": "p1"}})
	drafts := cache.NewMemoryCache()
	svc := NewWizardService(drafts, api, time.Hour)
	ctx := context.Background()

	_, err := svc.Get(ctx, FlowCandidate, "b1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	st, err := svc.Start(ctx, FlowCandidate, "b1", nil)
	require.NoError(t, err)
	assert.Equal(t, wizard.SectionIdentity, st.Step)

	res, err := svc.Next(ctx, FlowCandidate, "b1", "tok")
	require.NoError(t, err)
	assert.Equal(t, wizard.Blocked, res.Outcome)
	assert.False(t, res.Moved)
	assert.Len(t, res.State.Errors, 5)

	fillDraft(t, svc, "b1")
	for i := 0; i < wizard.NumSections-1; i++ {
		res, err = svc.Next(ctx, FlowCandidate, "b1", "tok")
		require.NoError(t, err)
		require.Equal(t, wizard.Advanced, res.Outcome, "step %d: %v", i, res.State.Errors)
	}

	back, err := svc.Back(ctx, FlowCandidate, "b1")
	require.NoError(t, err)
	assert.True(t, back.Moved)
	assert.Equal(t, wizard.SectionSummary, back.State.Step)
	_, err = svc.Next(ctx, FlowCandidate, "b1", "tok")
	require.NoError(t, err)

	res, err = svc.Next(ctx, FlowCandidate, "b1", "tok")
	require.NoError(t, err)
	assert.Equal(t, wizard.Submitted, res.Outcome)
	assert.True(t, res.State.Submitted)

	req, body := fb.last()
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.Equal(t, "+31612345678", body["phone"])
	assert.Equal(t, "Ada", body["first_name"])

	_, err = svc.Get(ctx, FlowCandidate, "b1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestWizardServiceSubmitRejected(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("POST /candidates", http.StatusUnprocessableEntity, map[string]any{
		"detail": []map[string]any{{"msg": "value is not a valid email address"}},
	})
	svc := NewWizardService(cache.NewMemoryCache(), api, time.Hour)
	ctx := context.Background()

	_, err := svc.Start(ctx, FlowCandidate, "b1", nil)
	require.NoError(t, err)
	fillDraft(t, svc, "b1")
	for i := 0; i < wizard.NumSections-1; i++ {
		_, err = svc.Next(ctx, FlowCandidate, "b1", "tok")
		require.NoError(t, err)
	}

	res, err := svc.Next(ctx, FlowCandidate, "b1", "tok")
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, wizard.SubmitFailed, res.Outcome)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	var ae *utils.AppError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "value is not a valid email address", ae.Message)

	st, err := svc.Get(ctx, FlowCandidate, "b1")
	require.NoError(t, err)
	assert.Equal(t, wizard.SectionExperience, st.Step)
	assert.Equal(t, "value is not a valid email address", st.SubmitError)
	assert.Equal(t, 1, fb.count("POST /candidates"))
}

func TestWizardServiceApplyIsAtomic(t *testing.T) {
	_, api := newFakeBackend(t)
	svc := NewWizardService(cache.NewMemoryCache(), api, time.Hour)
	ctx := context.Background()

	_, err := svc.Start(ctx, FlowRecruiter, "b1", nil)
	require.NoError(t, err)

	four := 4
	_, err = svc.Apply(ctx, FlowRecruiter, "b1", []wizard.Mutation{
		{Op: "set", Path: "title", Value: "Engineer"},
		{Op: "remove", Path: "education", Index: &four},
	})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	st, err := svc.Get(ctx, FlowRecruiter, "b1")
	require.NoError(t, err)
	assert.Empty(t, st.Draft.Title)
}

func TestWizardServiceFlowsAreSeparate(t *testing.T) {
	_, api := newFakeBackend(t)
	svc := NewWizardService(cache.NewMemoryCache(), api, time.Hour)
	ctx := context.Background()

	seed := wizard.NewDraft()
	seed.Title = "Seeded"
	_, err := svc.Start(ctx, FlowCandidate, "b1", &seed)
	require.NoError(t, err)

	_, err = svc.Get(ctx, FlowRecruiter, "b1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Start(ctx, "admin", "b1", nil)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	require.NoError(t, svc.Discard(ctx, FlowCandidate, "b1"))
	_, err = svc.Get(ctx, FlowCandidate, "b1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestWizardServiceBackAtStart(t *testing.T) {
	_, api := newFakeBackend(t)
	svc := NewWizardService(cache.NewMemoryCache(), api, time.Hour)
	ctx := context.Background()

	_, err := svc.Start(ctx, FlowCandidate, "b1", nil)
	require.NoError(t, err)
	res, err := svc.Back(ctx, FlowCandidate, "b1")
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Equal(t, wizard.SectionIdentity, res.State.Step)
}

func loginBody() map[string]any {
	return map[string]any{
		"access_token": "opaque",
		"token_type":   "bearer",
		"user":         map[string]any{"id": "u1", "email": "r@example.com", "role": "recruiter"},
	}
}

func TestIdentityLoginAndLogout(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("POST /auth/login", http.StatusOK, loginBody())
	backend := storage.NewMemoryBackend()
	drafts := cache.NewMemoryCache()
	svc := NewIdentityService(api, backend, drafts)
	wz := NewWizardService(drafts, api, time.Hour)
	ctx := context.Background()

	out, err := svc.Login(ctx, "b1", client.LoginRequest{EmailOrUsername: "r@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, out.Session.Authenticated)
	assert.Equal(t, "/recruiter", out.Redirect)

	st, err := svc.Session(ctx, "b1")
	require.NoError(t, err)
	assert.True(t, st.State().Authenticated)

	_, err = wz.Start(ctx, FlowRecruiter, "b1", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, "b1"))
	st, err = svc.Session(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, st.State().Authenticated)
	_, err = wz.Get(ctx, FlowRecruiter, "b1")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestIdentityLoginRejected(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("POST /auth/login", http.StatusUnauthorized, map[string]any{"detail": "Incorrect email/username or password"})
	svc := NewIdentityService(api, storage.NewMemoryBackend(), cache.NewMemoryCache())

	_, err := svc.Login(context.Background(), "b1", client.LoginRequest{EmailOrUsername: "x", Password: "password1"})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Contains(t, err.Error(), "Incorrect email/username or password")
}

func TestIdentityLoginWithToken(t *testing.T) {
	fb, api := newFakeBackend(t)
	svc := NewIdentityService(api, storage.NewMemoryBackend(), cache.NewMemoryCache())
	ctx := context.Background()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "ms-7",
		"email": "lin@example.com",
		"role":  "RECRUITER",
	}).SignedString([]byte("provider-secret"))
	require.NoError(t, err)

	out, err := svc.LoginWithToken(ctx, "b1", tok)
	require.NoError(t, err)
	assert.Equal(t, "/recruiter", out.Redirect)
	require.NotNil(t, out.Session.User)
	assert.Equal(t, "ms-7", out.Session.User.ID)
	assert.Equal(t, "lin", out.Session.User.Username)

	st, err := svc.Session(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, tok, st.Token())
	assert.Zero(t, fb.count("GET /auth/me"))

	_, err = svc.LoginWithToken(ctx, "b2", "not.a.token")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	st, err = svc.Session(ctx, "b2")
	require.NoError(t, err)
	assert.False(t, st.State().Authenticated)
}

func TestIdentityRefresh(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("POST /auth/login", http.StatusOK, loginBody())
	fb.on("GET /auth/me", http.StatusOK, map[string]any{"id": "u1", "full_name": "Rita", "role": "recruiter"})
	svc := NewIdentityService(api, storage.NewMemoryBackend(), cache.NewMemoryCache())
	ctx := context.Background()

	_, err := svc.Login(ctx, "b1", client.LoginRequest{EmailOrUsername: "r", Password: "password1"})
	require.NoError(t, err)

	st, err := svc.Refresh(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, st.User)
	assert.Equal(t, "Rita", st.User.FullName)

	fb.on("GET /auth/me", http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
	st, err = svc.Refresh(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, st.Authenticated)
}

type fakeUploader struct {
	name, contentType string
	data              []byte
}

func (f *fakeUploader) Upload(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.name, f.contentType, f.data = name, contentType, b
	return "https://cdn.example.com/" + name, nil
}

func TestCandidatePhotoUpload(t *testing.T) {
	_, api := newFakeBackend(t)
	drafts := cache.NewMemoryCache()
	wz := NewWizardService(drafts, api, time.Hour)
	up := &fakeUploader{}
	svc := NewCandidateService(api, up, wz)
	ctx := context.Background()

	_, err := svc.UploadPhoto(ctx, "b1", "image/png", strings.NewReader("png"))
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = wz.Start(ctx, FlowRecruiter, "b1", nil)
	require.NoError(t, err)

	_, err = svc.UploadPhoto(ctx, "b1", "application/pdf", strings.NewReader("pdf"))
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	st, err := svc.UploadPhoto(ctx, "b1", "image/png; charset=binary", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up.name, "candidates/photos/"))
	assert.True(t, strings.HasSuffix(up.name, ".png"))
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, "https://cdn.example.com/"+up.name, st.Draft.ImageURL)

	noUpload := NewCandidateService(api, nil, wz)
	_, err = noUpload.UploadPhoto(ctx, "b1", "image/png", strings.NewReader("png"))
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestCandidateList(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("GET /candidates", http.StatusOK, []map[string]any{{"id": "p1", "first_name": "Ada"}})
	svc := NewCandidateService(api, nil, nil)

	out, err := svc.List(context.Background(), "tok", 0, 20)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ada", out[0].FirstName)

	_, err = svc.Get(context.Background(), "tok", "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Get(context.Background(), "tok", " ")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestJobServiceRequiresIDs(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.on("GET /jobs/users/u1", http.StatusOK, []map[string]any{{"id": "j1"}})
	svc := NewJobService(api)
	ctx := context.Background()

	jobs, err := svc.ListByUser(ctx, "tok", "u1")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	assert.True(t, utils.IsCode(svc.Delete(ctx, "tok", ""), utils.CodeInvalidArgument))
	assert.Equal(t, 1, fb.count("GET /jobs/users/u1"))
}
