package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/utils"
	"github.com/hireai/portal/internal/wizard"
)

// WizardHandler serves one wizard flow: the candidate's own profile edit or
// a recruiter creating a profile for a candidate.
type WizardHandler struct {
	svc  services.WizardService
	flow string
}

func NewWizardHandler(svc services.WizardService, flow string) *WizardHandler {
	return &WizardHandler{svc: svc, flow: flow}
}

type StartWizardRequest struct {
	Draft *wizard.Draft `json:"draft"`
}

type MutateWizardRequest struct {
	Changes []wizard.Mutation `json:"changes" binding:"required,min=1,dive"`
}

func (h *WizardHandler) Get(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}
	st, err := h.svc.Get(c.Request.Context(), h.flow, browserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Start begins a draft. An empty body starts blank; {"draft": {...}} seeds
// it for editing.
func (h *WizardHandler) Start(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}

	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "WizardHandler.Start", err)
		return
	}

	st, err := h.svc.Start(c.Request.Context(), h.flow, browserID, req.Draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *WizardHandler) Mutate(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}

	var req MutateWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "WizardHandler.Mutate", err)
		return
	}

	st, err := h.svc.Apply(c.Request.Context(), h.flow, browserID, req.Changes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *WizardHandler) Discard(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}
	if err := h.svc.Discard(c.Request.Context(), h.flow, browserID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Next answers 400 with the field errors when the section is incomplete,
// and with the backend's status and message when submission is rejected.
func (h *WizardHandler) Next(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	res, err := h.svc.Next(c.Request.Context(), h.flow, browserID, sess.Token)
	if err != nil && res == nil {
		writeError(c, err)
		return
	}

	switch res.Outcome {
	case wizard.Blocked:
		c.JSON(http.StatusBadRequest, APIError{
			Code:    utils.CodeInvalidArgument,
			Message: "Please fix the highlighted fields",
			Fields:  res.State.Errors,
			State:   &res.State,
		})
	case wizard.SubmitFailed:
		_ = c.Error(err)
		body := APIError{Code: utils.CodeInternal, Message: res.State.SubmitError, State: &res.State}
		var ae *utils.AppError
		if errors.As(err, &ae) {
			body.Code = ae.Code
			body.Message = ae.Message
		}
		c.JSON(utils.HTTPStatus(err), body)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (h *WizardHandler) Back(c *gin.Context) {
	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}
	res, err := h.svc.Back(c.Request.Context(), h.flow, browserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
