package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	api "buddy-backend/cmd/api"
	authDelivery "buddy-backend/internal/auth/delivery"
	authdomain "buddy-backend/internal/auth/domain"
	authRepo "buddy-backend/internal/auth/repository"
	authUsecase "buddy-backend/internal/auth/usecase"
	digestDelivery "buddy-backend/internal/digest/delivery"
	digestdomain "buddy-backend/internal/digest/domain"
	digestRepo "buddy-backend/internal/digest/repository"
	"buddy-backend/internal/digest/scheduler"
	"buddy-backend/internal/digest/trigger"
	digestUsecase "buddy-backend/internal/digest/usecase"
	homeworkDelivery "buddy-backend/internal/homework/delivery"
	homeworkdomain "buddy-backend/internal/homework/domain"
	homeworkRepo "buddy-backend/internal/homework/repository"
	homeworkUsecase "buddy-backend/internal/homework/usecase"
	materialDelivery "buddy-backend/internal/material/delivery"
	materialdomain "buddy-backend/internal/material/domain"
	materialRepo "buddy-backend/internal/material/repository"
	materialUsecase "buddy-backend/internal/material/usecase"
	preferenceDelivery "buddy-backend/internal/preference/delivery"
	preferencedomain "buddy-backend/internal/preference/domain"
	preferenceRepo "buddy-backend/internal/preference/repository"
	preferenceUsecase "buddy-backend/internal/preference/usecase"
	"buddy-backend/internal/progress/catalog"
	progressDelivery "buddy-backend/internal/progress/delivery"
	progressdomain "buddy-backend/internal/progress/domain"
	progressRepo "buddy-backend/internal/progress/repository"
	progressUsecase "buddy-backend/internal/progress/usecase"
	quizDelivery "buddy-backend/internal/quiz/delivery"
	quizdomain "buddy-backend/internal/quiz/domain"
	quizRepo "buddy-backend/internal/quiz/repository"
	quizUsecase "buddy-backend/internal/quiz/usecase"
	taskDelivery "buddy-backend/internal/task/delivery"
	taskdomain "buddy-backend/internal/task/domain"
	taskRepo "buddy-backend/internal/task/repository"
	taskUsecase "buddy-backend/internal/task/usecase"
	"buddy-backend/pkg/ai"
	"buddy-backend/pkg/config"
	"buddy-backend/pkg/database"
	"buddy-backend/pkg/fcm"
	"buddy-backend/pkg/logger"
	"buddy-backend/pkg/mailer"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "building logger:", err)
		os.Exit(1)
	}
	log = logger.WithRollbar(log, logger.RollbarOptions{
		Token:       cfg.RollbarToken,
		Environment: cfg.Env,
		CodeVersion: cfg.BuildVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("buddy-backend stopped", zap.Error(err))
		logger.Flush(log)
		os.Exit(1)
	}
	logger.Flush(log)
}

// run wires the application and serves until ctx is cancelled. Deferred
// cleanup always runs before it returns.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DatabaseURL, log)
	if err != nil {
		return errors.Wrap(err, "connecting to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.Profile{}, &authdomain.FCMToken{},
		&taskdomain.Subject{}, &taskdomain.Task{},
		&preferencedomain.EmailPreference{},
		&progressdomain.Progress{}, &progressdomain.Badge{}, &progressdomain.UserBadge{},
		&digestdomain.Delivery{},
		&homeworkdomain.Submission{},
		&quizdomain.Attempt{},
		&materialdomain.Material{},
	); err != nil {
		return errors.Wrap(err, "migrating database")
	}

	// Initialize repositories (dependency injection)
	profileRepository := authRepo.NewProfileRepository(db)
	fcmTokenRepository := authRepo.NewFCMTokenRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	preferenceRepository := preferenceRepo.NewGormPreferenceRepository(db)
	progressRepository := progressRepo.NewGormProgressRepository(db)
	badgeRepository := progressRepo.NewGormBadgeRepository(db)
	deliveryLog := digestRepo.NewGormDeliveryLog(db)
	submissionRepository := homeworkRepo.NewGormSubmissionRepository(db)
	attemptRepository := quizRepo.NewGormAttemptRepository(db)
	materialRepository := materialRepo.NewGormMaterialRepository(db)

	badges, err := catalog.Default()
	if err != nil {
		return errors.Wrap(err, "loading badge catalog")
	}
	if err := badgeRepository.Seed(ctx, badges); err != nil {
		return errors.Wrap(err, "seeding badges")
	}

	// Milestone push notifications, falling back to the log when Firebase is not configured
	var notifier progressUsecase.Notifier = progressUsecase.NewLogNotifier(log)
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials, log)
		if err != nil {
			log.Warn("fcm client unavailable, push notifications disabled", zap.Error(err))
		} else {
			notifier = progressUsecase.NewPushNotifier(fcmTokenRepository, fcmClient, log)
		}
	}
	milestoneWorker := progressUsecase.NewMilestoneWorker(notifier, 2, 100, log)
	milestoneWorker.Start()
	defer milestoneWorker.Stop()

	sender, err := mailer.New(cfg, log)
	if err != nil {
		return errors.Wrap(err, "configuring mailer")
	}
	reviewer, err := ai.NewReviewer(cfg, log)
	if err != nil {
		return errors.Wrap(err, "configuring ai reviewer")
	}

	// Initialize use cases (dependency injection)
	ledger := progressUsecase.NewLedger(progressRepository, badgeRepository, milestoneWorker, log)
	authUc := authUsecase.NewAuthUsecase(cfg.JWTSecret, profileRepository, fcmTokenRepository)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository, log)
	preferenceUc := preferenceUsecase.NewPreferenceUsecase(preferenceRepository)
	homeworkUc := homeworkUsecase.NewHomeworkUsecase(submissionRepository, reviewer, ledger, log)
	quizUc := quizUsecase.NewQuizUsecase(attemptRepository, ledger, log)
	materialUc := materialUsecase.NewMaterialUsecase(materialRepository, ledger, cfg.MaterialUploadXP, log)

	dispatcher := digestUsecase.NewDispatcher(
		taskRepository,
		preferenceRepository,
		profileRepository,
		deliveryLog,
		sender,
		digestUsecase.Options{MaxAttempts: cfg.DigestMaxAttempts, RetryDelay: cfg.DigestRetryDelay},
		log,
	)

	// In-process hourly trigger
	if cfg.DigestSchedulerEnabled {
		digestScheduler := scheduler.New(dispatcher, log)
		if err := digestScheduler.Start(); err != nil {
			return errors.Wrap(err, "starting digest scheduler")
		}
		defer digestScheduler.Stop()
	}

	// Pub/Sub trigger, only when a project and topic are configured
	if cfg.GoogleProjectID != "" && cfg.DigestPubSubTopic != "" {
		// Accept either a short topic name or the full resource name
		topicName := cfg.DigestPubSubTopic
		if parts := strings.Split(topicName, "/"); len(parts) > 1 {
			topicName = parts[len(parts)-1]
		}

		digestTrigger, err := trigger.NewPubSubTrigger(ctx, cfg.GoogleProjectID, topicName, cfg.GoogleCredentials, dispatcher, log)
		if err != nil {
			log.Error("failed to initialize digest pubsub trigger", zap.Error(err))
		} else {
			defer digestTrigger.Close()
			go func() {
				if err := digestTrigger.Start(ctx); err != nil {
					log.Error("digest pubsub trigger stopped", zap.Error(err))
				}
			}()
		}
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUc, api.Handlers{
		Auth:       authDelivery.NewAuthHandler(authUc, log),
		Task:       taskDelivery.NewTaskHandler(taskUc, log),
		Preference: preferenceDelivery.NewPreferenceHandler(preferenceUc, log),
		Progress:   progressDelivery.NewProgressHandler(ledger, log),
		Digest:     digestDelivery.NewDigestHandler(dispatcher, log),
		Homework:   homeworkDelivery.NewHomeworkHandler(homeworkUc, log),
		Quiz:       quizDelivery.NewQuizHandler(quizUc, log),
		Material:   materialDelivery.NewMaterialHandler(materialUc, log),
	}, cfg, log)

	// Start server
	errCh := make(chan error, 1)
	go func() {
		errCh <- handler.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return errors.Wrap(handler.Shutdown(shutdownCtx), "shutting down server")
	}
}
