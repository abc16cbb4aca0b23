package delivery

import (
	"context"
	"net/http"

	"buddy-backend/internal/digest/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Runner runs one digest pass.
type Runner interface {
	Run(ctx context.Context) (*domain.Report, error)
}

type DigestHandler struct {
	runner Runner
	log    *zap.Logger
}

func NewDigestHandler(runner Runner, log *zap.Logger) *DigestHandler {
	return &DigestHandler{runner: runner, log: log}
}

// Dispatch runs the digest batch now. Called by the external scheduler.
// POST /api/digest/dispatch
func (h *DigestHandler) Dispatch(c *gin.Context) {
	report, err := h.runner.Run(c.Request.Context())
	if err != nil {
		h.log.Error("digest dispatch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
