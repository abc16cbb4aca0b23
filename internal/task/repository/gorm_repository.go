package repository

import (
	"context"
	"time"

	"buddy-backend/internal/task/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	return errors.Wrap(r.db.WithContext(ctx).Omit("Subject").Create(task).Error, "creating task")
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Preload("Subject").Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding task")
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUserID(ctx context.Context, userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	var tasks []*domain.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "counting tasks")
	}

	err := query.Preload("Subject").
		Order("due_date ASC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "listing tasks")
	}
	return tasks, total, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now().UTC()
	return errors.Wrap(r.db.WithContext(ctx).Omit("Subject").Save(task).Error, "updating task")
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	return errors.Wrap(r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error, "deleting task")
}

func (r *gormTaskRepository) FindIncomplete(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("completed = ?", false).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, errors.Wrap(err, "loading incomplete tasks")
	}
	return tasks, nil
}

func (r *gormTaskRepository) MarkReminderSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now().UTC(),
		}).Error
	return errors.Wrap(err, "marking reminders sent")
}
