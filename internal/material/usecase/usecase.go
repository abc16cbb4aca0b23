package usecase

import (
	"context"

	"buddy-backend/internal/material/domain"
	"buddy-backend/internal/material/repository"
	progressusecase "buddy-backend/internal/progress/usecase"

	"go.uber.org/zap"
)

type XPAwarder interface {
	AwardXP(ctx context.Context, userID string, amount int) (*progressusecase.AwardResult, error)
}

type UploadRequest struct {
	Title     string  `json:"title"`
	Topic     string  `json:"topic"`
	SubjectID *string `json:"subject_id"`
	FileType  string  `json:"file_type"`
	FileURL   string  `json:"file_url"`
	Content   string  `json:"content"`
}

type UploadOutcome struct {
	Material *domain.Material             `json:"material"`
	XPEarned int                          `json:"xp_earned"`
	Progress *progressusecase.AwardResult `json:"progress,omitempty"`
	Warning  string                       `json:"warning,omitempty"`
}

type MaterialUsecase interface {
	Upload(ctx context.Context, userID string, req UploadRequest) (*UploadOutcome, error)
	List(ctx context.Context, userID string, subjectID *string) ([]*domain.Material, error)
}

type materialUsecase struct {
	repo     repository.MaterialRepository
	ledger   XPAwarder
	uploadXP int
	log      *zap.Logger
}

// NewMaterialUsecase awards uploadXP per stored material. Zero disables the reward.
func NewMaterialUsecase(repo repository.MaterialRepository, ledger XPAwarder, uploadXP int, log *zap.Logger) MaterialUsecase {
	return &materialUsecase{repo: repo, ledger: ledger, uploadXP: uploadXP, log: log.Named("materials")}
}

func (u *materialUsecase) Upload(ctx context.Context, userID string, req UploadRequest) (*UploadOutcome, error) {
	m := &domain.Material{
		UserID:    userID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
		Topic:     req.Topic,
		FileType:  req.FileType,
		FileURL:   req.FileURL,
		Content:   req.Content,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	out := &UploadOutcome{Material: m}
	if u.uploadXP <= 0 {
		return out, nil
	}

	progress, err := u.ledger.AwardXP(ctx, userID, u.uploadXP)
	if err != nil {
		u.log.Error("awarding upload xp failed", zap.String("user_id", userID), zap.Error(err))
		out.Warning = "xp could not be awarded"
		return out, nil
	}
	out.XPEarned = u.uploadXP
	out.Progress = progress
	return out, nil
}

func (u *materialUsecase) List(ctx context.Context, userID string, subjectID *string) ([]*domain.Material, error) {
	return u.repo.FindByUserID(ctx, userID, subjectID)
}
