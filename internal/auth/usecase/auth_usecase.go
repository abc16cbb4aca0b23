package usecase

import (
	"context"
	"strings"

	authdomain "buddy-backend/internal/auth/domain"
	"buddy-backend/internal/auth/dto"
	"buddy-backend/internal/auth/repository"
	"buddy-backend/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("device token not found")
)

// AuthUsecase validates provider-issued tokens and manages the caller's
// directory entry and push devices.
type AuthUsecase interface {
	// ValidateToken returns the user id carried in the token's sub claim.
	ValidateToken(tokenString string) (string, error)

	GetProfile(ctx context.Context, userID string) (*authdomain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*authdomain.Profile, error)

	RegisterFCMToken(ctx context.Context, userID string, req *dto.RegisterFCMTokenRequest) error
	UnregisterFCMToken(ctx context.Context, userID, token string) error
}

type authUsecase struct {
	secret      []byte
	profileRepo repository.ProfileRepository
	fcmRepo     repository.FCMTokenRepository
}

func NewAuthUsecase(secret string, profileRepo repository.ProfileRepository, fcmRepo repository.FCMTokenRepository) AuthUsecase {
	return &authUsecase{
		secret:      []byte(secret),
		profileRepo: profileRepo,
		fcmRepo:     fcmRepo,
	}
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*authdomain.Profile, error) {
	profile, err := u.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &authdomain.Profile{ID: userID}, nil
	}
	return profile, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*authdomain.Profile, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	profile := &authdomain.Profile{ID: userID, Email: req.Email, FullName: req.FullName}
	if existing, err := u.profileRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	} else if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *authUsecase) RegisterFCMToken(ctx context.Context, userID string, req *dto.RegisterFCMTokenRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return u.fcmRepo.SaveToken(ctx, userID, strings.TrimSpace(req.Token), req.DeviceInfo)
}

func (u *authUsecase) UnregisterFCMToken(ctx context.Context, userID, token string) error {
	ok, err := u.fcmRepo.DeleteUserToken(ctx, userID, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenNotFound
	}
	return nil
}
