package repository

import (
	"context"

	"buddy-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error

	// FindByID returns nil, nil when the task does not exist.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindByUserID lists a user's tasks by due date, optionally filtered on completion.
	FindByUserID(ctx context.Context, userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	Update(ctx context.Context, task *domain.Task) error

	Delete(ctx context.Context, id string) error

	// FindIncomplete returns every incomplete task of every user ordered by
	// due date, with its subject loaded.
	FindIncomplete(ctx context.Context) ([]*domain.Task, error)

	// MarkReminderSent flags tasks as included in a sent digest.
	MarkReminderSent(ctx context.Context, ids []string) error
}
