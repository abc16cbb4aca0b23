package repository

import (
	"context"

	authdomain "buddy-backend/internal/auth/domain"
)

// ProfileRepository reads and writes the user directory.
type ProfileRepository interface {
	// FindByID returns nil, nil when the profile does not exist.
	FindByID(ctx context.Context, id string) (*authdomain.Profile, error)

	// FindByIDs returns the profiles that exist, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*authdomain.Profile, error)

	Upsert(ctx context.Context, profile *authdomain.Profile) error
}

// FCMTokenRepository stores push device tokens.
type FCMTokenRepository interface {
	SaveToken(ctx context.Context, userID, token, deviceInfo string) error
	GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserToken(ctx context.Context, userID, token string) (bool, error)
}
