package usecase

import (
	"context"

	progressusecase "buddy-backend/internal/progress/usecase"
	"buddy-backend/internal/quiz/domain"
	"buddy-backend/internal/quiz/repository"

	"go.uber.org/zap"
)

type XPAwarder interface {
	AwardXP(ctx context.Context, userID string, amount int) (*progressusecase.AwardResult, error)
}

type AttemptRequest struct {
	Score          int   `json:"score"`
	TotalQuestions int   `json:"total_questions"`
	Answers        []int `json:"answers"`
}

type AttemptOutcome struct {
	Attempt  *domain.Attempt              `json:"attempt"`
	XPEarned int                          `json:"xp_earned"`
	Progress *progressusecase.AwardResult `json:"progress,omitempty"`
	Warning  string                       `json:"warning,omitempty"`
}

type QuizUsecase interface {
	RecordAttempt(ctx context.Context, userID, quizID string, req AttemptRequest) (*AttemptOutcome, error)
	ListAttempts(ctx context.Context, userID string) ([]*domain.Attempt, error)
}

type quizUsecase struct {
	repo   repository.AttemptRepository
	ledger XPAwarder
	log    *zap.Logger
}

func NewQuizUsecase(repo repository.AttemptRepository, ledger XPAwarder, log *zap.Logger) QuizUsecase {
	return &quizUsecase{repo: repo, ledger: ledger, log: log.Named("quiz")}
}

func (u *quizUsecase) RecordAttempt(ctx context.Context, userID, quizID string, req AttemptRequest) (*AttemptOutcome, error) {
	attempt := &domain.Attempt{
		QuizID:         quizID,
		UserID:         userID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
	}
	if err := attempt.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, attempt); err != nil {
		return nil, err
	}

	out := &AttemptOutcome{Attempt: attempt, XPEarned: attempt.XP()}
	if out.XPEarned == 0 {
		return out, nil
	}

	progress, err := u.ledger.AwardXP(ctx, userID, out.XPEarned)
	if err != nil {
		u.log.Error("awarding quiz xp failed",
			zap.String("user_id", userID), zap.String("quiz_id", quizID), zap.Error(err))
		out.Warning = "xp could not be awarded"
		return out, nil
	}
	out.Progress = progress
	return out, nil
}

func (u *quizUsecase) ListAttempts(ctx context.Context, userID string) ([]*domain.Attempt, error) {
	return u.repo.FindByUserID(ctx, userID)
}
