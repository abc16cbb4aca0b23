package usecase

import (
	"context"
	"errors"

	"buddy-backend/internal/progress/domain"
)

var ErrMissingUser = errors.New("user id is required")

// Ledger applies XP awards and streak updates. Collaborator actions call it
// after their own write has committed and must not undo that write when
// the ledger returns an error.
type Ledger interface {
	// AwardXP adds amount to the user's XP, recomputes level, advances the
	// streak for today (UTC) and grants any newly satisfied badges.
	AwardXP(ctx context.Context, userID string, amount int) (*AwardResult, error)

	// UpdateStreak advances the streak without awarding XP.
	UpdateStreak(ctx context.Context, userID string) (*AwardResult, error)

	GetProgress(ctx context.Context, userID string) (*domain.Progress, error)

	ListBadges(ctx context.Context, userID string) ([]domain.UserBadge, error)
}

// AwardResult is what a ledger call changed.
type AwardResult struct {
	Progress     *domain.Progress    `json:"progress"`
	XPAwarded    int                 `json:"xp_awarded"`
	StreakChange domain.StreakChange `json:"streak_change"`
	NewRecord    bool                `json:"new_record"`
	Milestone    *domain.Milestone   `json:"milestone,omitempty"`
	NewBadges    []domain.Badge      `json:"new_badges,omitempty"`
}

// MilestoneQueue accepts milestone notifications for background delivery.
type MilestoneQueue interface {
	Enqueue(job MilestoneJob) bool
}
