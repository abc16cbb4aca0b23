package usecase

import (
	"context"
	"strings"
	"time"

	"buddy-backend/internal/homework/domain"
	"buddy-backend/internal/homework/repository"
	progressusecase "buddy-backend/internal/progress/usecase"
	"buddy-backend/pkg/ai"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrForbidden          = errors.New("submission belongs to another user")
	ErrAlreadyApproved    = errors.New("submission already approved")
)

// XPAwarder is the part of the progress ledger homework needs.
type XPAwarder interface {
	AwardXP(ctx context.Context, userID string, amount int) (*progressusecase.AwardResult, error)
}

type CreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SubjectID   *string `json:"subject_id"`
	FileType    string  `json:"file_type"`
	FileURL     string  `json:"file_url"`
}

// ReviewOutcome is a submission after review. Warning is set when the
// review or the XP award could not complete; the submission itself is kept.
type ReviewOutcome struct {
	Submission *domain.Submission           `json:"submission"`
	Progress   *progressusecase.AwardResult `json:"progress,omitempty"`
	Warning    string                       `json:"warning,omitempty"`
}

type HomeworkUsecase interface {
	// Submit stores the submission and reviews it right away.
	Submit(ctx context.Context, userID string, req CreateRequest) (*ReviewOutcome, error)
	// Review (re)reviews a pending or rejected submission.
	Review(ctx context.Context, userID, submissionID string) (*ReviewOutcome, error)
	List(ctx context.Context, userID string) ([]*domain.Submission, error)
}

type homeworkUsecase struct {
	repo     repository.SubmissionRepository
	reviewer ai.Reviewer
	ledger   XPAwarder
	clock    func() time.Time
	log      *zap.Logger
}

func NewHomeworkUsecase(repo repository.SubmissionRepository, reviewer ai.Reviewer, ledger XPAwarder, log *zap.Logger) HomeworkUsecase {
	return &homeworkUsecase{
		repo:     repo,
		reviewer: reviewer,
		ledger:   ledger,
		clock:    time.Now,
		log:      log.Named("homework"),
	}
}

func (u *homeworkUsecase) Submit(ctx context.Context, userID string, req CreateRequest) (*ReviewOutcome, error) {
	sub := &domain.Submission{
		ID:          uuid.New().String(),
		UserID:      userID,
		SubjectID:   req.SubjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileType:    req.FileType,
		FileURL:     strings.TrimSpace(req.FileURL),
		Status:      domain.StatusPending,
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return u.review(ctx, sub), nil
}

func (u *homeworkUsecase) Review(ctx context.Context, userID, submissionID string) (*ReviewOutcome, error) {
	sub, err := u.repo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	if sub.UserID != userID {
		return nil, ErrForbidden
	}
	if sub.Status == domain.StatusApproved {
		return nil, ErrAlreadyApproved
	}
	return u.review(ctx, sub), nil
}

func (u *homeworkUsecase) List(ctx context.Context, userID string) ([]*domain.Submission, error) {
	return u.repo.FindByUserID(ctx, userID)
}

// review never fails the request: the stored submission is the primary
// write and stays as it is when a later step fails.
func (u *homeworkUsecase) review(ctx context.Context, sub *domain.Submission) *ReviewOutcome {
	out := &ReviewOutcome{Submission: sub}
	log := u.log.With(zap.String("user_id", sub.UserID), zap.String("submission_id", sub.ID))

	verdict, err := u.reviewer.ReviewHomework(ctx, ai.Submission{
		Title:       sub.Title,
		Description: sub.Description,
		FileType:    sub.FileType,
	})
	if err == nil && verdict == nil {
		err = errors.New("reviewer returned no verdict")
	}
	if err != nil {
		log.Warn("homework review failed", zap.Error(err))
		out.Warning = "review unavailable, submission kept as " + string(sub.Status)
		return out
	}

	sub.ApplyReview(verdict.Completed, verdict.XP, verdict.Feedback, u.clock())
	if err := u.repo.Update(ctx, sub); err != nil {
		log.Error("saving review failed", zap.Error(err))
		out.Warning = "review could not be saved"
		return out
	}
	log.Info("homework reviewed", zap.String("status", string(sub.Status)), zap.Int("xp", sub.XPAwarded))

	if sub.Status != domain.StatusApproved {
		return out
	}
	progress, err := u.ledger.AwardXP(ctx, sub.UserID, sub.XPAwarded)
	if err != nil {
		log.Error("awarding homework xp failed", zap.Error(err))
		out.Warning = "xp could not be awarded"
		return out
	}
	out.Progress = progress
	return out
}
