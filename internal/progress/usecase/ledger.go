package usecase

import (
	"context"
	"time"

	"buddy-backend/internal/progress/domain"
	"buddy-backend/internal/progress/repository"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ledger struct {
	progressRepo repository.ProgressRepository
	badgeRepo    repository.BadgeRepository
	milestones   MilestoneQueue
	clock        func() time.Time
	log          *zap.Logger
}

// NewLedger creates a Ledger. milestones may be nil.
func NewLedger(progressRepo repository.ProgressRepository, badgeRepo repository.BadgeRepository, milestones MilestoneQueue, log *zap.Logger) Ledger {
	return &ledger{
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		milestones:   milestones,
		clock:        time.Now,
		log:          log.Named("ledger"),
	}
}

func (l *ledger) AwardXP(ctx context.Context, userID string, amount int) (*AwardResult, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	p, outcome, err := l.progressRepo.AwardXP(ctx, userID, amount, l.clock())
	if err != nil {
		return nil, errors.Wrapf(err, "awarding %d xp to %s", amount, userID)
	}

	result := l.afterStreak(ctx, userID, p, outcome)
	result.XPAwarded = amount

	l.log.Info("xp awarded",
		zap.String("user_id", userID),
		zap.Int("amount", amount),
		zap.Int("total_xp", result.Progress.TotalXP),
		zap.Int("level", result.Progress.Level),
		zap.Int("streak", result.Progress.CurrentStreak))
	return result, nil
}

func (l *ledger) UpdateStreak(ctx context.Context, userID string) (*AwardResult, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	p, outcome, err := l.progressRepo.UpdateStreak(ctx, userID, l.clock())
	if err != nil {
		return nil, errors.Wrapf(err, "updating streak for %s", userID)
	}
	return l.afterStreak(ctx, userID, p, outcome), nil
}

// afterStreak queues any milestone and grants newly satisfied badges.
func (l *ledger) afterStreak(ctx context.Context, userID string, p *domain.Progress, outcome domain.StreakOutcome) *AwardResult {
	result := &AwardResult{
		Progress:     p,
		StreakChange: outcome.Change,
		NewRecord:    outcome.NewRecord,
		Milestone:    outcome.Milestone,
	}

	if outcome.Milestone != nil && l.milestones != nil {
		if !l.milestones.Enqueue(MilestoneJob{UserID: userID, Milestone: *outcome.Milestone}) {
			l.log.Warn("milestone queue full, dropping notification",
				zap.String("user_id", userID), zap.Int("streak", outcome.Milestone.Streak))
		}
	}

	// Badges are a bonus on top of the award; a failure here is logged only.
	badges, err := l.grantBadges(ctx, *p)
	if err != nil {
		l.log.Warn("badge evaluation failed", zap.String("user_id", userID), zap.Error(err))
	}
	result.NewBadges = badges
	return result
}

func (l *ledger) grantBadges(ctx context.Context, p domain.Progress) ([]domain.Badge, error) {
	if l.badgeRepo == nil {
		return nil, nil
	}

	catalog, err := l.badgeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := l.badgeRepo.ListEarned(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(earned))
	for _, ub := range earned {
		have[ub.BadgeID] = true
	}

	var granted []domain.Badge
	now := l.clock()
	for _, b := range catalog {
		if have[b.ID] || !b.SatisfiedBy(p) {
			continue
		}
		ok, err := l.badgeRepo.Grant(ctx, p.UserID, b.ID, now)
		if err != nil {
			return granted, err
		}
		if ok {
			granted = append(granted, b)
		}
	}
	return granted, nil
}

func (l *ledger) GetProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	return l.progressRepo.GetOrCreate(ctx, userID)
}

func (l *ledger) ListBadges(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	if l.badgeRepo == nil {
		return nil, nil
	}
	return l.badgeRepo.ListEarned(ctx, userID)
}
