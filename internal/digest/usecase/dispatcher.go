package usecase

import (
	"context"
	"sync"
	"time"

	authdomain "buddy-backend/internal/auth/domain"
	"buddy-backend/internal/digest/domain"
	"buddy-backend/internal/digest/repository"
	prefdomain "buddy-backend/internal/preference/domain"
	taskdomain "buddy-backend/internal/task/domain"
	"buddy-backend/pkg/mailer"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TaskSource is the slice of the task store the dispatcher reads and flags.
type TaskSource interface {
	FindIncomplete(ctx context.Context) ([]*taskdomain.Task, error)
	MarkReminderSent(ctx context.Context, ids []string) error
}

type PreferenceSource interface {
	FindByUserIDs(ctx context.Context, userIDs []string) (map[string]*prefdomain.EmailPreference, error)
}

type ProfileSource interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]*authdomain.Profile, error)
}

// Options tune delivery retries.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

func DefaultOptions() Options {
	return Options{MaxAttempts: 3, RetryDelay: 2 * time.Second}
}

// Dispatcher sends the hourly batch of daily digests. Runs are serialized.
type Dispatcher struct {
	tasks      TaskSource
	prefs      PreferenceSource
	profiles   ProfileSource
	deliveries repository.DeliveryLog
	sender     mailer.Sender
	opts       Options
	log        *zap.Logger

	clock func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu sync.Mutex
}

func NewDispatcher(
	tasks TaskSource,
	prefs PreferenceSource,
	profiles ProfileSource,
	deliveries repository.DeliveryLog,
	sender mailer.Sender,
	opts Options,
	log *zap.Logger,
) *Dispatcher {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Dispatcher{
		tasks:      tasks,
		prefs:      prefs,
		profiles:   profiles,
		deliveries: deliveries,
		sender:     sender,
		opts:       opts,
		log:        log.Named("digest"),
		clock:      time.Now,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// userTasks is one user's incomplete tasks in due order.
type userTasks struct {
	userID string
	tasks  []*taskdomain.Task
}

func groupByUser(tasks []*taskdomain.Task) []userTasks {
	index := make(map[string]int)
	var out []userTasks
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		i, ok := index[t.UserID]
		if !ok {
			i = len(out)
			index[t.UserID] = i
			out = append(out, userTasks{userID: t.UserID})
		}
		out[i].tasks = append(out[i].tasks, t)
	}
	return out
}

// Run performs one dispatch pass. Only failures to load the batch are
// returned as errors; per-user failures are reported in the results.
func (d *Dispatcher) Run(ctx context.Context) (*domain.Report, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock().UTC()
	log := d.log.With(zap.Time("run_at", now))

	tasks, err := d.tasks.FindIncomplete(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading tasks")
	}
	users := groupByUser(tasks)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.userID)
	}
	profiles, err := d.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "loading profiles")
	}
	prefs, err := d.prefs.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "loading email preferences")
	}

	log.Info("digest run started", zap.Int("tasks", len(tasks)), zap.Int("users", len(users)))

	report := domain.NewReport()
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			log.Warn("digest run interrupted", zap.Int("attempted", report.TotalUsers), zap.Error(err))
			return report, errors.Wrap(err, "digest run interrupted")
		}

		profile := profiles[u.userID]
		pref := prefs[u.userID]
		if pref == nil {
			pref = prefdomain.Default(u.userID)
		}

		if reason := d.gate(ctx, u.userID, profile, pref, now); reason != "" {
			log.Debug("skipping user", zap.String("user_id", u.userID), zap.String("reason", reason))
			continue
		}

		report.Add(d.deliver(ctx, u, profile, pref, now))
	}

	log.Info("digest run finished",
		zap.Int("digests_sent", report.DigestsSent),
		zap.Int("total_users", report.TotalUsers))
	return report, nil
}

// gate returns why a user is skipped, or "" when a digest should be sent.
func (d *Dispatcher) gate(ctx context.Context, userID string, profile *authdomain.Profile, pref *prefdomain.EmailPreference, now time.Time) string {
	if profile == nil || profile.Email == "" {
		return "no email"
	}
	if !pref.DailyDigestEnabled {
		return "digest disabled"
	}
	hour, err := pref.DeliveryHour()
	if err != nil {
		d.log.Warn("unreadable digest_time, using default",
			zap.String("user_id", userID), zap.String("digest_time", pref.DigestTime))
		hour, _ = prefdomain.Default(userID).DeliveryHour()
	}
	if hour != now.Hour() {
		return "outside delivery hour"
	}
	sent, err := d.deliveries.HasSent(ctx, userID, domain.DayKey(now))
	if err != nil {
		// A failed lookup does not block delivery.
		d.log.Warn("checking delivery log failed", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	if sent {
		return "already sent today"
	}
	return ""
}

func (d *Dispatcher) deliver(ctx context.Context, u userTasks, profile *authdomain.Profile, pref *prefdomain.EmailPreference, now time.Time) domain.Result {
	result := domain.Result{UserID: u.userID, TasksCount: len(u.tasks)}
	log := d.log.With(zap.String("user_id", u.userID))

	digest := domain.Build(u.userID, profile.Email, profile.FullName, u.tasks, pref, now)
	html, err := Render(digest)
	if err != nil {
		result.Status = domain.StatusFailed
		result.Error = err.Error()
		log.Error("rendering digest failed", zap.Error(err))
		return result
	}

	msg := mailer.Message{
		To:      profile.Email,
		ToName:  profile.FullName,
		Subject: Subject(digest),
		HTML:    html,
	}
	if err := d.sendWithRetry(ctx, msg, log); err != nil {
		result.Status = domain.StatusFailed
		result.Error = err.Error()
		log.Error("digest delivery failed", zap.Int("attempts", d.opts.MaxAttempts), zap.Error(err))
		return result
	}

	result.Status = domain.StatusSent
	log.Info("digest sent", zap.Int("tasks", len(u.tasks)))

	if err := d.deliveries.MarkSent(ctx, u.userID, len(u.tasks), now); err != nil {
		log.Warn("recording delivery failed", zap.Error(err))
	}
	if err := d.tasks.MarkReminderSent(ctx, digest.TaskIDs()); err != nil {
		log.Warn("flagging digested tasks failed", zap.Error(err))
	}
	return result
}

func (d *Dispatcher) sendWithRetry(ctx context.Context, msg mailer.Message, log *zap.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		lastErr = d.sender.Send(ctx, msg)
		if lastErr == nil {
			return nil
		}
		log.Warn("digest send attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", d.opts.MaxAttempts),
			zap.Error(lastErr))

		if attempt < d.opts.MaxAttempts {
			if err := d.sleep(ctx, d.opts.RetryDelay); err != nil {
				return errors.Wrap(err, "waiting to retry")
			}
		}
	}
	return lastErr
}
