package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	BrowserCookie = "hireai_sid"

	browserCookieMaxAge = int(365 * 24 * time.Hour / time.Second)
)

// BrowserSession identifies the browser by a long-lived cookie, issuing one
// when it is missing or malformed. Everything the portal keeps per browser
// is keyed by this id.
func BrowserSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(BrowserCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(BrowserCookie, id, browserCookieMaxAge, "/", "", secure, true)
		}
		c.Set(KeyBrowserID, id)
		c.Next()
	}
}
