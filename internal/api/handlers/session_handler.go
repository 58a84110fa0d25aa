package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/api/middleware"
	"github.com/hireai/portal/internal/guard"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/utils"
)

type SessionHandler struct {
	svc services.IdentityService
}

func NewSessionHandler(svc services.IdentityService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// Get returns the browser's session. ?refresh=true reloads the user from
// the backend first.
func (h *SessionHandler) Get(c *gin.Context) {
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		browserID, ok := requireBrowserID(c)
		if !ok {
			return
		}
		st, err := h.svc.Refresh(c.Request.Context(), browserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
		return
	}

	st, ok := middleware.Session(c)
	if !ok {
		writeError(c, utils.E(utils.CodeInternal, "SessionHandler.Get", "session not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, st.State())
}

// Navigate tells the SPA where a browser landing on ?path= should go.
func (h *SessionHandler) Navigate(c *gin.Context) {
	st, ok := middleware.Session(c)
	if !ok {
		writeError(c, utils.E(utils.CodeInternal, "SessionHandler.Navigate", "session not loaded", nil))
		return
	}
	c.JSON(http.StatusOK, guard.Resolve(c.DefaultQuery("path", "/"), st.State()))
}
