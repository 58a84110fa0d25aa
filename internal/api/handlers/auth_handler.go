package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/client"
	"github.com/hireai/portal/internal/guard"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/utils"
)

type AuthHandler struct {
	svc services.IdentityService
}

func NewAuthHandler(svc services.IdentityService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}

	var req client.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AuthHandler.Login", err)
		return
	}

	out, err := h.svc.Login(c.Request.Context(), browserID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// OAuthCallback finishes a provider sign-in. The provider sends the browser
// back with ?token= on success or ?error= on failure; either way the browser
// is redirected, to the role's home page or to the recruiter sign-in page
// with the failure in ?error=.
func (h *AuthHandler) OAuthCallback(provider string) gin.HandlerFunc {
	const op = "AuthHandler.OAuthCallback"
	return func(c *gin.Context) {
		browserID, ok := requireBrowserID(c)
		if !ok {
			return
		}

		failed := func(msg string, err error) {
			_ = c.Error(utils.E(utils.CodeUnauthorized, op, msg, err))
			c.Redirect(http.StatusFound, guard.SignInRoute(models.RoleRecruiter)+"?error="+url.QueryEscape(msg))
		}

		if e := strings.TrimSpace(c.Query("error")); e != "" {
			failed(provider+" login failed: "+e, nil)
			return
		}
		token := strings.TrimSpace(c.Query("token"))
		if token == "" {
			failed("Invalid callback", nil)
			return
		}

		out, err := h.svc.LoginWithToken(c.Request.Context(), browserID, token)
		if err != nil {
			failed(provider+" login failed", err)
			return
		}
		c.Redirect(http.StatusFound, out.Redirect)
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}
	if err := h.svc.Logout(c.Request.Context(), browserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req client.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AuthHandler.Signup", err)
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req client.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AuthHandler.SendOTP", err)
		return
	}
	ack, err := h.svc.SendOTP(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req client.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AuthHandler.VerifyOTP", err)
		return
	}
	ack, err := h.svc.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req client.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "AuthHandler.ResetPassword", err)
		return
	}
	ack, err := h.svc.ResetPassword(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
