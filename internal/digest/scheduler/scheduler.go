package scheduler

import (
	"context"
	"time"

	"buddy-backend/internal/digest/domain"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// HourlyCron fires at the top of every hour.
const HourlyCron = "0 * * * *"

// Runner runs one digest pass.
type Runner interface {
	Run(ctx context.Context) (*domain.Report, error)
}

// DigestScheduler triggers the digest dispatcher on a cron schedule in UTC.
type DigestScheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	cronExpr  string
	timeout   time.Duration
	log       *zap.Logger
}

func New(runner Runner, log *zap.Logger) *DigestScheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &DigestScheduler{
		scheduler: s,
		runner:    runner,
		cronExpr:  HourlyCron,
		timeout:   50 * time.Minute,
		log:       log.Named("digest-scheduler"),
	}
}

// Start registers the hourly job and runs the scheduler in the background.
func (s *DigestScheduler) Start() error {
	if _, err := s.scheduler.Cron(s.cronExpr).Do(s.tick); err != nil {
		return errors.Wrapf(err, "scheduling digest with %q", s.cronExpr)
	}
	s.scheduler.StartAsync()
	s.log.Info("digest scheduler started", zap.String("cron", s.cronExpr))
	return nil
}

func (s *DigestScheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("digest scheduler stopped")
}

func (s *DigestScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.runner.Run(ctx)
	if err != nil {
		s.log.Error("scheduled digest run failed", zap.Error(err))
		return
	}
	s.log.Info("scheduled digest run done",
		zap.Int("digests_sent", report.DigestsSent),
		zap.Int("total_users", report.TotalUsers))
}
