package repository

import (
	"context"

	"buddy-backend/internal/preference/domain"
)

type PreferenceRepository interface {
	// FindByUserID returns nil, nil when the user has no stored row.
	FindByUserID(ctx context.Context, userID string) (*domain.EmailPreference, error)

	// FindByUserIDs returns the stored rows keyed by user id. Users without a
	// row are absent from the map.
	FindByUserIDs(ctx context.Context, userIDs []string) (map[string]*domain.EmailPreference, error)

	Upsert(ctx context.Context, pref *domain.EmailPreference) error
}
