package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/api/middleware"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/utils"
	"github.com/hireai/portal/internal/wizard"
)

type APIError struct {
	Code    utils.Code    `json:"code"`
	Message string        `json:"message"`
	Fields  wizard.Errors `json:"fields,omitempty"`
	State   *wizard.State `json:"state,omitempty"`
}

func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func badRequest(c *gin.Context, op string, err error) {
	writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
}

func requireBrowserID(c *gin.Context) (string, bool) {
	if id := middleware.BrowserID(c); id != "" {
		return id, true
	}
	writeError(c, utils.E(utils.CodeInternal, "Browser", "browser id missing", nil))
	return "", false
}

// requireSession returns the current session. Routes behind RequireRole
// always have an authenticated one.
func requireSession(c *gin.Context) (models.SessionState, bool) {
	st, ok := middleware.Session(c)
	if ok {
		if s := st.State(); s.Authenticated {
			return s, true
		}
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return models.SessionState{}, false
}

// paging reads skip and limit, defaulting to the first ten.
func paging(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return skip, limit
}
