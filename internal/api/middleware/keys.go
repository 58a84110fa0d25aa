package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/session"
	"github.com/hireai/portal/internal/utils"
)

// Context keys set by this package.
const (
	KeyBrowserID = "browser_id"
	KeySession   = "session"
	KeyUserID    = "user_id"
	KeyRole      = "role"
)

type apiError struct {
	Code     utils.Code `json:"code"`
	Message  string     `json:"message"`
	Redirect string     `json:"redirect,omitempty"`
}

func BrowserID(c *gin.Context) string {
	return c.GetString(KeyBrowserID)
}

// Session returns the store LoadSession attached to the request.
func Session(c *gin.Context) (*session.Store, bool) {
	v, ok := c.Get(KeySession)
	if !ok {
		return nil, false
	}
	st, ok := v.(*session.Store)
	return st, ok && st != nil
}
