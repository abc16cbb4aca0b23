package repository

import (
	"context"
	"time"

	"buddy-backend/internal/progress/domain"
)

// ProgressRepository persists per-user XP and streak rows.
type ProgressRepository interface {
	// GetOrCreate returns the user's record, inserting the zero state if absent.
	GetOrCreate(ctx context.Context, userID string) (*domain.Progress, error)

	// AwardXP atomically adds amount to total_xp, recomputes level and applies
	// the streak rule for now in one transaction. Nothing is stored on failure.
	AwardXP(ctx context.Context, userID string, amount int, now time.Time) (*domain.Progress, domain.StreakOutcome, error)

	// UpdateStreak applies the streak rule for now under a row lock.
	UpdateStreak(ctx context.Context, userID string, now time.Time) (*domain.Progress, domain.StreakOutcome, error)
}

// BadgeRepository persists the badge catalog and earned badges.
type BadgeRepository interface {
	// Seed upserts catalog entries by name.
	Seed(ctx context.Context, badges []domain.Badge) error

	List(ctx context.Context) ([]domain.Badge, error)

	// ListEarned returns the user's badges, newest first, with the badge row loaded.
	ListEarned(ctx context.Context, userID string) ([]domain.UserBadge, error)

	// Grant records a badge for a user. It returns false if the user already had it.
	Grant(ctx context.Context, userID, badgeID string, at time.Time) (bool, error)
}
