package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/models"
	"github.com/hireai/portal/internal/services"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) List(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	skip, limit := paging(c)
	jobs, err := h.svc.List(c.Request.Context(), sess.Token, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Mine lists the jobs posted by the signed-in recruiter.
func (h *JobHandler) Mine(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	jobs, err := h.svc.ListByUser(c.Request.Context(), sess.Token, sess.User.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	job, err := h.svc.Get(c.Request.Context(), sess.Token, jobID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req models.JobPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "JobHandler.Create", err)
		return
	}
	job, err := h.svc.Create(c.Request.Context(), sess.Token, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req models.JobPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "JobHandler.Update", err)
		return
	}
	job, err := h.svc.Update(c.Request.Context(), sess.Token, jobID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), sess.Token, jobID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// jobID reads the id from either route shape.
func jobID(c *gin.Context) string {
	if id := c.Param("jobId"); id != "" {
		return id
	}
	return c.Param("id")
}
