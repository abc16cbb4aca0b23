package delivery

import (
	"net/http"

	"buddy-backend/internal/quiz/usecase"
	"buddy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizHandler struct {
	usecase usecase.QuizUsecase
	log     *zap.Logger
}

func NewQuizHandler(uc usecase.QuizUsecase, log *zap.Logger) *QuizHandler {
	return &QuizHandler{usecase: uc, log: log}
}

// RecordAttempt stores a finished quiz and awards XP for correct answers.
// POST /api/quizzes/:id/attempts
func (h *QuizHandler) RecordAttempt(c *gin.Context) {
	userID := c.GetString("userID")

	var req usecase.AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.usecase.RecordAttempt(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if validation.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("recording quiz attempt", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record attempt"})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/quizzes/attempts
func (h *QuizHandler) ListAttempts(c *gin.Context) {
	userID := c.GetString("userID")

	attempts, err := h.usecase.ListAttempts(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("listing quiz attempts", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load attempts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts, "total": len(attempts)})
}
