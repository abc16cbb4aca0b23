package delivery

import (
	"net/http"

	"buddy-backend/internal/homework/usecase"
	"buddy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type HomeworkHandler struct {
	usecase usecase.HomeworkUsecase
	log     *zap.Logger
}

func NewHomeworkHandler(uc usecase.HomeworkUsecase, log *zap.Logger) *HomeworkHandler {
	return &HomeworkHandler{usecase: uc, log: log}
}

// Submit stores and reviews a homework submission.
// POST /api/homework
func (h *HomeworkHandler) Submit(c *gin.Context) {
	var req usecase.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.usecase.Submit(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// POST /api/homework/:id/review
func (h *HomeworkHandler) Review(c *gin.Context) {
	out, err := h.usecase.Review(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/homework
func (h *HomeworkHandler) List(c *gin.Context) {
	subs, err := h.usecase.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": subs, "total": len(subs)})
}

func (h *HomeworkHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, usecase.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case validation.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("homework request failed", zap.String("user_id", c.GetString("userID")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
