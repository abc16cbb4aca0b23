package usecase

import (
	"context"

	"buddy-backend/internal/preference/domain"
	"buddy-backend/internal/preference/repository"
	"buddy-backend/pkg/validation"
)

// UpdateRequest replaces the stored preference. Omitted flags keep their
// current value.
type UpdateRequest struct {
	DailyDigestEnabled *bool   `json:"daily_digest_enabled"`
	DigestTime         *string `json:"digest_time" validate:"omitempty,notblank"`
	IncludeOverdue     *bool   `json:"include_overdue"`
	IncludeToday       *bool   `json:"include_today"`
	IncludeThisWeek    *bool   `json:"include_this_week"`
	IncludeUpcoming    *bool   `json:"include_upcoming"`
}

type PreferenceUsecase interface {
	// Get returns the stored preference or the defaults.
	Get(ctx context.Context, userID string) (*domain.EmailPreference, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*domain.EmailPreference, error)
}

type preferenceUsecase struct {
	repo repository.PreferenceRepository
}

func NewPreferenceUsecase(repo repository.PreferenceRepository) PreferenceUsecase {
	return &preferenceUsecase{repo: repo}
}

func (u *preferenceUsecase) Get(ctx context.Context, userID string) (*domain.EmailPreference, error) {
	pref, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return domain.Default(userID), nil
	}
	return pref, nil
}

func (u *preferenceUsecase) Update(ctx context.Context, userID string, req UpdateRequest) (*domain.EmailPreference, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	pref, err := u.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DigestTime != nil {
		t, err := domain.NormalizeDigestTime(*req.DigestTime)
		if err != nil {
			return nil, err
		}
		pref.DigestTime = t
	}
	setBool(&pref.DailyDigestEnabled, req.DailyDigestEnabled)
	setBool(&pref.IncludeOverdue, req.IncludeOverdue)
	setBool(&pref.IncludeToday, req.IncludeToday)
	setBool(&pref.IncludeThisWeek, req.IncludeThisWeek)
	setBool(&pref.IncludeUpcoming, req.IncludeUpcoming)

	if err := u.repo.Upsert(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
