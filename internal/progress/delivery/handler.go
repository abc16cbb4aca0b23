package delivery

import (
	"net/http"

	"buddy-backend/internal/progress/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProgressHandler serves the user's XP, level, streak and badges.
type ProgressHandler struct {
	ledger usecase.Ledger
	log    *zap.Logger
}

func NewProgressHandler(ledger usecase.Ledger, log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{ledger: ledger, log: log}
}

// GetProgress returns the caller's progress, creating the zero state on first read.
// GET /api/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID := c.GetString("userID")

	p, err := h.ledger.GetProgress(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("loading progress", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetBadges returns the badges the caller has earned.
// GET /api/progress/badges
func (h *ProgressHandler) GetBadges(c *gin.Context) {
	userID := c.GetString("userID")

	badges, err := h.ledger.ListBadges(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("loading badges", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badges": badges,
		"total":  len(badges),
	})
}
