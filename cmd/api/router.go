package api

import (
	"net/http"

	"buddy-backend/internal/auth/delivery"
	authUsecase "buddy-backend/internal/auth/usecase"
	"buddy-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, cfg *config.Config, h Handlers) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.BuildVersion})
		})

		// Digest batch, called by the external hourly scheduler
		api.POST("/digest/dispatch", delivery.CronMiddleware(cfg.CronSecret), h.Digest.Dispatch)

		protected := api.Group("")
		protected.Use(delivery.AuthMiddleware(authUsecase))

		protected.GET("/profile", h.Auth.GetProfile)
		protected.PUT("/profile", h.Auth.UpdateProfile)

		fcm := protected.Group("/fcm")
		{
			fcm.POST("/register", h.Auth.RegisterFCMToken)
			fcm.DELETE("/:token", h.Auth.UnregisterFCMToken)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", h.Task.GetTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("/search", h.Task.SearchTasks)
			tasks.GET("/:id", h.Task.GetTaskByID)
			tasks.PUT("/:id", h.Task.UpdateTask)
			tasks.DELETE("/:id", h.Task.DeleteTask)
			tasks.PATCH("/:id/complete", h.Task.CompleteTask)
		}

		prefs := protected.Group("/preferences")
		{
			prefs.GET("/email", h.Preference.GetEmailPreferences)
			prefs.PUT("/email", h.Preference.UpdateEmailPreferences)
		}

		progress := protected.Group("/progress")
		{
			progress.GET("", h.Progress.GetProgress)
			progress.GET("/badges", h.Progress.GetBadges)
		}

		homework := protected.Group("/homework")
		{
			homework.GET("", h.Homework.List)
			homework.POST("", h.Homework.Submit)
			homework.POST("/:id/review", h.Homework.Review)
		}

		quizzes := protected.Group("/quizzes")
		{
			quizzes.GET("/attempts", h.Quiz.ListAttempts)
			quizzes.POST("/:id/attempts", h.Quiz.RecordAttempt)
		}

		materials := protected.Group("/materials")
		{
			materials.GET("", h.Material.List)
			materials.POST("", h.Material.Upload)
		}
	}
}
