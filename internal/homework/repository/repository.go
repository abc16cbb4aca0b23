package repository

import (
	"context"
	"time"

	"buddy-backend/internal/homework/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) error
	// FindByID returns nil, nil when the submission does not exist.
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Submission, error)
	Update(ctx context.Context, s *domain.Submission) error
}

type gormSubmissionRepository struct {
	db *gorm.DB
}

func NewGormSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &gormSubmissionRepository{db: db}
}

func (r *gormSubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	return errors.Wrap(r.db.WithContext(ctx).Create(s).Error, "creating submission")
}

func (r *gormSubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	var s domain.Submission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding submission")
	}
	return &s, nil
}

func (r *gormSubmissionRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Submission, error) {
	var subs []*domain.Submission
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, errors.Wrap(err, "listing submissions")
}

func (r *gormSubmissionRepository) Update(ctx context.Context, s *domain.Submission) error {
	s.UpdatedAt = time.Now().UTC()
	return errors.Wrap(r.db.WithContext(ctx).Save(s).Error, "updating submission")
}
