package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/guard"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/utils"
)

// RequireRole guards a route group with the route guard. Redirects carry
// the target in both the Location header and the body so the SPA can
// follow them.
func RequireRole(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := Session(c)
		if !ok {
			abortNoSession(c)
			return
		}

		state := st.State()
		d := guard.Evaluate(required, state)
		switch d.Outcome {
		case guard.Allow:
			c.Next()
		case guard.Suspend:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, apiError{
				Code:    utils.CodeUnavailable,
				Message: "session is loading",
			})
		default:
			c.Header("Location", d.Location)
			if !state.Authenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
					Code:     utils.CodeUnauthorized,
					Message:  "sign in required",
					Redirect: d.Location,
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:     utils.CodeForbidden,
				Message:  "forbidden",
				Redirect: d.Location,
			})
		}
	}
}

func RequireCandidate() gin.HandlerFunc { return RequireRole(models.RoleCandidate) }
func RequireRecruiter() gin.HandlerFunc { return RequireRole(models.RoleRecruiter) }
