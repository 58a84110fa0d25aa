package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/utils"
)

// LoadSession hydrates the browser's session store once per request and
// exposes it, together with user_id and role, on the context. It must run
// after BrowserSession.
func LoadSession(ids services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := ids.Session(c.Request.Context(), BrowserID(c))
		if err != nil {
			_ = c.Error(err)
			code := utils.CodeUnavailable
			var ae *utils.AppError
			if errors.As(err, &ae) {
				code = ae.Code
			}
			c.AbortWithStatusJSON(utils.HTTPStatus(err), apiError{
				Code:    code,
				Message: "session unavailable",
			})
			return
		}

		state := st.State()
		if state.Authenticated && state.User != nil {
			c.Set(KeyUserID, state.User.ID)
			c.Set(KeyRole, string(state.Role))
		}
		c.Set(KeySession, st)
		c.Next()
	}
}

func abortNoSession(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
		Code:    utils.CodeInternal,
		Message: "session not loaded",
	})
}
