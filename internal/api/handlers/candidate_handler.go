package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireai/portal/internal/services"
	"github.com/hireai/portal/internal/utils"
)

const maxPhotoBytes = 5 << 20

type CandidateHandler struct {
	svc services.CandidateService
}

func NewCandidateHandler(svc services.CandidateService) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

func (h *CandidateHandler) List(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	skip, limit := paging(c)
	out, err := h.svc.List(c.Request.Context(), sess.Token, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CandidateHandler) Get(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	out, err := h.svc.Get(c.Request.Context(), sess.Token, c.Param("candidateId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// UploadPhoto takes multipart field "photo" and attaches it to the
// recruiter's profile draft.
func (h *CandidateHandler) UploadPhoto(c *gin.Context) {
	const op = "CandidateHandler.UploadPhoto"

	browserID, ok := requireBrowserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'photo'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxPhotoBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "photo too large (max 5MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	// the declared type is not trusted
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	ct := http.DetectContentType(head)

	st, err := h.svc.UploadPhoto(c.Request.Context(), browserID, ct, io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
