package repository

import (
	"context"
	"time"

	"buddy-backend/internal/quiz/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *domain.Attempt) error
	FindByUserID(ctx context.Context, userID string) ([]*domain.Attempt, error)
}

type gormAttemptRepository struct {
	db *gorm.DB
}

func NewGormAttemptRepository(db *gorm.DB) AttemptRepository {
	return &gormAttemptRepository{db: db}
}

func (r *gormAttemptRepository) Create(ctx context.Context, a *domain.Attempt) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = time.Now().UTC()
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(a).Error, "creating quiz attempt")
}

func (r *gormAttemptRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	var attempts []*domain.Attempt
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("completed_at DESC").Find(&attempts).Error
	return attempts, errors.Wrap(err, "listing quiz attempts")
}
