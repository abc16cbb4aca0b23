package repository

import (
	"context"
	"time"

	"buddy-backend/internal/progress/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormProgressRepository struct {
	db *gorm.DB
}

func NewGormProgressRepository(db *gorm.DB) ProgressRepository {
	return &gormProgressRepository{db: db}
}

func ensureProgress(tx *gorm.DB, userID string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(domain.NewProgress(userID)).Error
	return errors.Wrap(err, "inserting progress row")
}

func (r *gormProgressRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Progress, error) {
	db := r.db.WithContext(ctx)
	if err := ensureProgress(db, userID); err != nil {
		return nil, err
	}
	var p domain.Progress
	if err := db.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, errors.Wrap(err, "loading progress")
	}
	return &p, nil
}

func (r *gormProgressRepository) AwardXP(ctx context.Context, userID string, amount int, now time.Time) (*domain.Progress, domain.StreakOutcome, error) {
	var (
		p       domain.Progress
		outcome domain.StreakOutcome
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProgress(tx, userID); err != nil {
			return err
		}
		// Both expressions read the pre-update total_xp.
		err := tx.Model(&domain.Progress{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"total_xp":   gorm.Expr("total_xp + ?", amount),
				"level":      gorm.Expr("(total_xp + ?) / ? + 1", amount, domain.XPPerLevel),
				"updated_at": now.UTC(),
			}).Error
		if err != nil {
			return errors.Wrap(err, "incrementing xp")
		}
		p, outcome, err = advanceStreak(tx, userID, now)
		return err
	})
	if err != nil {
		return nil, domain.StreakOutcome{}, err
	}
	return &p, outcome, nil
}

func (r *gormProgressRepository) UpdateStreak(ctx context.Context, userID string, now time.Time) (*domain.Progress, domain.StreakOutcome, error) {
	var (
		p       domain.Progress
		outcome domain.StreakOutcome
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProgress(tx, userID); err != nil {
			return err
		}
		var err error
		p, outcome, err = advanceStreak(tx, userID, now)
		return err
	})
	if err != nil {
		return nil, domain.StreakOutcome{}, err
	}
	return &p, outcome, nil
}

// advanceStreak locks the row and applies the streak rule for now inside tx.
func advanceStreak(tx *gorm.DB, userID string, now time.Time) (domain.Progress, domain.StreakOutcome, error) {
	var p domain.Progress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "user_id = ?", userID).Error
	if err != nil {
		return p, domain.StreakOutcome{}, errors.Wrap(err, "locking progress row")
	}

	outcome := domain.ApplyStreak(p.Streak(), now)
	if outcome.Change == domain.StreakUnchanged {
		return p, outcome, nil
	}
	p.ApplyStreakState(outcome.State)
	p.UpdatedAt = now.UTC()

	err = tx.Model(&domain.Progress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":     p.CurrentStreak,
			"longest_streak":     p.LongestStreak,
			"last_activity_date": *p.LastActivityDate,
			"updated_at":         p.UpdatedAt,
		}).Error
	return p, outcome, errors.Wrap(err, "saving streak")
}

type gormBadgeRepository struct {
	db *gorm.DB
}

func NewGormBadgeRepository(db *gorm.DB) BadgeRepository {
	return &gormBadgeRepository{db: db}
}

func (r *gormBadgeRepository) Seed(ctx context.Context, badges []domain.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	rows := make([]domain.Badge, len(badges))
	for i, b := range badges {
		b.ID = uuid.New().String()
		rows[i] = b
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "icon", "requirement_type", "requirement_value"}),
	}).Create(&rows).Error
	return errors.Wrap(err, "seeding badges")
}

func (r *gormBadgeRepository) List(ctx context.Context) ([]domain.Badge, error) {
	var badges []domain.Badge
	err := r.db.WithContext(ctx).Order("requirement_type, requirement_value").Find(&badges).Error
	return badges, errors.Wrap(err, "listing badges")
}

func (r *gormBadgeRepository) ListEarned(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	var earned []domain.UserBadge
	err := r.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	return earned, errors.Wrap(err, "listing earned badges")
}

func (r *gormBadgeRepository) Grant(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.UserBadge{
		ID:       uuid.New().String(),
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: at.UTC(),
	})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "granting badge")
	}
	return res.RowsAffected == 1, nil
}
