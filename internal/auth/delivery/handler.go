package delivery

import (
	"net/http"

	"buddy-backend/internal/auth/dto"
	"buddy-backend/internal/auth/usecase"
	"buddy-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AuthHandler serves the caller's profile and push device registration.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	log         *zap.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, log: log}
}

// GET /api/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := h.authUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("loading profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.authUsecase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if validation.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("updating profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RegisterFCMToken stores a device token for push notifications.
// POST /api/fcm/register
func (h *AuthHandler) RegisterFCMToken(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.RegisterFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.RegisterFCMToken(c.Request.Context(), userID, &req); err != nil {
		if validation.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("registering fcm token", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token registered"})
}

// DELETE /api/fcm/:token
func (h *AuthHandler) UnregisterFCMToken(c *gin.Context) {
	userID := c.GetString("userID")

	err := h.authUsecase.UnregisterFCMToken(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		if errors.Is(err, usecase.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "token not found"})
			return
		}
		h.log.Error("unregistering fcm token", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token removed"})
}
