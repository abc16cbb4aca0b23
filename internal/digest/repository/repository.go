package repository

import (
	"context"
	"time"

	"buddy-backend/internal/digest/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeliveryLog remembers which users already received today's digest.
type DeliveryLog interface {
	HasSent(ctx context.Context, userID, day string) (bool, error)
	MarkSent(ctx context.Context, userID string, tasksCount int, at time.Time) error
}

type gormDeliveryLog struct {
	db *gorm.DB
}

func NewGormDeliveryLog(db *gorm.DB) DeliveryLog {
	return &gormDeliveryLog{db: db}
}

func (r *gormDeliveryLog) HasSent(ctx context.Context, userID, day string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Delivery{}).
		Where("user_id = ? AND sent_on = ?", userID, day).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "checking digest delivery")
	}
	return count > 0, nil
}

func (r *gormDeliveryLog) MarkSent(ctx context.Context, userID string, tasksCount int, at time.Time) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&domain.Delivery{
		ID:         uuid.New().String(),
		UserID:     userID,
		SentOn:     domain.DayKey(at),
		TasksCount: tasksCount,
		SentAt:     at.UTC(),
	}).Error
	return errors.Wrap(err, "recording digest delivery")
}
