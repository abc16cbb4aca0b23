package usecase

import (
	"context"
	"strings"

	"buddy-backend/internal/task/domain"
	"buddy-backend/internal/task/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type taskUsecase struct {
	taskRepo repository.TaskRepository
	log      *zap.Logger
}

func NewTaskUsecase(taskRepo repository.TaskRepository, log *zap.Logger) TaskUsecase {
	return &taskUsecase{taskRepo: taskRepo, log: log.Named("tasks")}
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error) {
	due, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		return nil, ErrInvalidDueDate
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		SubjectID:   emptyToNil(req.SubjectID),
		DueDate:     due,
		Priority:    domain.ParsePriority(req.Priority),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	u.log.Debug("task created", zap.String("user_id", userID), zap.String("task_id", task.ID))
	return task, nil
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(ctx context.Context, userID string, completed *bool, limit, offset int) ([]*domain.Task, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.taskRepo.FindByUserID(ctx, userID, completed, limit, offset)
}

func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		task.Title = strings.TrimSpace(*updates.Title)
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.SubjectID != nil {
		task.SubjectID = emptyToNil(updates.SubjectID)
		task.Subject = nil
	}
	if updates.Priority != nil {
		task.Priority = domain.ParsePriority(*updates.Priority)
	}
	if updates.Completed != nil {
		task.Completed = *updates.Completed
	}
	if updates.DueDate != nil {
		due, err := domain.ParseDueDate(*updates.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		if !due.Equal(task.DueDate) {
			// A moved deadline is eligible for the next digest again.
			task.ReminderSent = false
		}
		task.DueDate = due
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := u.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error) {
	return u.UpdateTask(ctx, userID, taskID, TaskUpdateRequest{Completed: &completed})
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	task, err := u.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return u.taskRepo.Delete(ctx, task.ID)
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
