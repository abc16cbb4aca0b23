package repository

import (
	"context"
	"time"

	authdomain "buddy-backend/internal/auth/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*authdomain.Profile, error) {
	var profile authdomain.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding profile")
	}
	return &profile, nil
}

func (r *profileRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*authdomain.Profile, error) {
	out := make(map[string]*authdomain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var profiles []*authdomain.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "finding profiles")
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *authdomain.Profile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "updated_at"}),
	}).Create(profile).Error
	return errors.Wrap(err, "upserting profile")
}
