package repository

import (
	"context"
	"time"

	"buddy-backend/internal/preference/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPreferenceRepository struct {
	db *gorm.DB
}

func NewGormPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &gormPreferenceRepository{db: db}
}

func (r *gormPreferenceRepository) FindByUserID(ctx context.Context, userID string) (*domain.EmailPreference, error) {
	var pref domain.EmailPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding email preference")
	}
	return &pref, nil
}

func (r *gormPreferenceRepository) FindByUserIDs(ctx context.Context, userIDs []string) (map[string]*domain.EmailPreference, error) {
	out := make(map[string]*domain.EmailPreference, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var prefs []*domain.EmailPreference
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&prefs).Error; err != nil {
		return nil, errors.Wrap(err, "loading email preferences")
	}
	for _, p := range prefs {
		out[p.UserID] = p
	}
	return out, nil
}

func (r *gormPreferenceRepository) Upsert(ctx context.Context, pref *domain.EmailPreference) error {
	pref.UpdatedAt = time.Now().UTC()
	// Select("*") writes false booleans that would otherwise be skipped as zero values.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_digest_enabled", "digest_time",
			"include_overdue", "include_today", "include_this_week", "include_upcoming",
			"updated_at",
		}),
	}).Select("*").Create(pref).Error
	return errors.Wrap(err, "upserting email preference")
}
