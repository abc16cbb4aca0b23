package api

import (
	"context"
	"net/http"
	"time"

	authDelivery "buddy-backend/internal/auth/delivery"
	authUsecase "buddy-backend/internal/auth/usecase"
	digestDelivery "buddy-backend/internal/digest/delivery"
	homeworkDelivery "buddy-backend/internal/homework/delivery"
	materialDelivery "buddy-backend/internal/material/delivery"
	preferenceDelivery "buddy-backend/internal/preference/delivery"
	progressDelivery "buddy-backend/internal/progress/delivery"
	quizDelivery "buddy-backend/internal/quiz/delivery"
	taskDelivery "buddy-backend/internal/task/delivery"
	"buddy-backend/pkg/config"
	"buddy-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handlers groups the feature handlers mounted by the router.
type Handlers struct {
	Auth       *authDelivery.AuthHandler
	Task       *taskDelivery.TaskHandler
	Preference *preferenceDelivery.PreferenceHandler
	Progress   *progressDelivery.ProgressHandler
	Digest     *digestDelivery.DigestHandler
	Homework   *homeworkDelivery.HomeworkHandler
	Quiz       *quizDelivery.QuizHandler
	Material   *materialDelivery.MaterialHandler
}

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	handlers    Handlers
	config      *config.Config
	log         *zap.Logger
	server      *http.Server
}

func NewHandler(authUc authUsecase.AuthUsecase, handlers Handlers, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		authUsecase: authUc,
		handlers:    handlers,
		config:      cfg,
		log:         log.Named("http"),
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	if h.config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(h.log), cors())

	SetupRoutes(r, h.authUsecase, h.config, h.handlers)
	return r
}

// Start serves until Shutdown is called. It returns nil on a clean shutdown.
func (h *Handler) Start(addr string) error {
	h.server = &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	h.log.Info("server starting", zap.String("addr", addr))
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serving http")
	}
	return nil
}

func (h *Handler) Shutdown(ctx context.Context) error {
	if h.server == nil {
		return nil
	}
	return h.server.Shutdown(ctx)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Cron-Secret, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
