package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/session"
	"github.com/hireai/portal/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func withStore(st *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(KeySession, st)
		c.Next()
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrowserSessionIssuesAndKeepsCookie(t *testing.T) {
	r := gin.New()
	r.Use(BrowserSession(true))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, BrowserID(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, BrowserCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, cookies[0].Value, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = serve(r, req)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, cookies[0].Value, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: BrowserCookie, Value: "forged"})
	w = serve(r, req)
	assert.NoError(t, uuid.Validate(w.Body.String()))
}

func TestRequireRoleSuspendsWhileLoading(t *testing.T) {
	r := gin.New()
	r.Use(withStore(session.New(storage.NewMemoryBackend().For("b1"))), RequireCandidate())
	r.GET("/candidate/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/candidate/jobs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRequireRoleOutcomes(t *testing.T) {
	ctx := context.Background()
	st := session.New(storage.NewMemoryBackend().For("b1"))
	require.NoError(t, st.Hydrate(ctx))

	r := gin.New()
	r.Use(withStore(st))
	r.GET("/recruiter/my-jobs", RequireRecruiter(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/recruiter/my-jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body apiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/recruiter-signin", body.Redirect)

	require.NoError(t, st.Login(ctx, models.LoginResult{AccessToken: "t", User: models.User{ID: "u1", Role: models.RoleCandidate}}))
	w = serve(r, httptest.NewRequest(http.MethodGet, "/recruiter/my-jobs", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "/candidate", w.Header().Get("Location"))

	require.NoError(t, st.Login(ctx, models.LoginResult{AccessToken: "t", User: models.User{ID: "u1", Role: models.RoleRecruiter}}))
	w = serve(r, httptest.NewRequest(http.MethodGet, "/recruiter/my-jobs", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWithoutSession(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireRecruiter())
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(l), BrowserSession(false))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "req-1")
	w := serve(r, req)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "req-1", m["request_id"])
	assert.Equal(t, "/x", m["path"])
	assert.Equal(t, float64(http.StatusTeapot), m["status"])
	assert.NotEmpty(t, m["browser_id"])
	assert.Equal(t, "warning", m["level"])
}
