package delivery

import (
	"net/http"

	"buddy-backend/internal/material/usecase"
	"buddy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MaterialHandler struct {
	usecase usecase.MaterialUsecase
	log     *zap.Logger
}

func NewMaterialHandler(uc usecase.MaterialUsecase, log *zap.Logger) *MaterialHandler {
	return &MaterialHandler{usecase: uc, log: log}
}

// POST /api/materials
func (h *MaterialHandler) Upload(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.usecase.Upload(c.Request.Context(), userID, req)
	if err != nil {
		if validation.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("uploading material", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save material"})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// List returns the caller's materials, optionally narrowed by ?subject_id=.
// GET /api/materials
func (h *MaterialHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	var subjectID *string
	if s := c.Query("subject_id"); s != "" {
		subjectID = &s
	}

	materials, err := h.usecase.List(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.log.Error("listing materials", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load materials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials, "total": len(materials)})
}
