package usecase

import (
	"context"
	"errors"

	"buddy-backend/internal/task/domain"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrForbidden      = errors.New("task belongs to another user")
	ErrInvalidDueDate = errors.New("due_date must be RFC 3339 or YYYY-MM-DD")
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with ownership check)
	GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error)

	GetUserTasks(ctx context.Context, userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error)

	UpdateTask(ctx context.Context, userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// SetCompleted marks a task done or reopens it.
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error)

	DeleteTask(ctx context.Context, userID, taskID string) error

	// SearchTasks ranks the user's tasks against query, tolerating typos.
	SearchTasks(ctx context.Context, userID, query string, limit int) ([]*domain.Task, error)
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SubjectID   *string `json:"subject_id"`
	DueDate     string  `json:"due_date"`
	Priority    string  `json:"priority"`
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SubjectID   *string `json:"subject_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
