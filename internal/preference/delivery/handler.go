package delivery

import (
	"net/http"

	"buddy-backend/internal/preference/domain"
	"buddy-backend/internal/preference/usecase"
	"buddy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type PreferenceHandler struct {
	usecase usecase.PreferenceUsecase
	log     *zap.Logger
}

func NewPreferenceHandler(uc usecase.PreferenceUsecase, log *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{usecase: uc, log: log}
}

// GET /api/preferences/email
func (h *PreferenceHandler) GetEmailPreferences(c *gin.Context) {
	userID := c.GetString("userID")

	pref, err := h.usecase.Get(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("loading email preferences", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// PUT /api/preferences/email
func (h *PreferenceHandler) UpdateEmailPreferences(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.usecase.Update(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDigestTime) || validation.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("saving email preferences", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, pref)
}
