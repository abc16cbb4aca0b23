package repository

import (
	"context"

	"buddy-backend/internal/material/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	FindByUserID(ctx context.Context, userID string, subjectID *string) ([]*domain.Material, error)
}

type gormMaterialRepository struct {
	db *gorm.DB
}

func NewGormMaterialRepository(db *gorm.DB) MaterialRepository {
	return &gormMaterialRepository{db: db}
}

func (r *gormMaterialRepository) Create(ctx context.Context, m *domain.Material) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(m).Error, "creating material")
}

func (r *gormMaterialRepository) FindByUserID(ctx context.Context, userID string, subjectID *string) ([]*domain.Material, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}

	var materials []*domain.Material
	err := q.Order("created_at DESC").Find(&materials).Error
	return materials, errors.Wrap(err, "listing materials")
}
