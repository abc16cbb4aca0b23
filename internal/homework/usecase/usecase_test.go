package usecase

import (
	"context"
	"testing"

	"buddy-backend/internal/homework/domain"
	"buddy-backend/internal/homework/repository"
	progressdomain "buddy-backend/internal/progress/domain"
	progressusecase "buddy-backend/internal/progress/usecase"
	"buddy-backend/pkg/ai"
	"buddy-backend/pkg/database/databasetest"
	"buddy-backend/pkg/validation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReviewer struct {
	review *ai.Review
	err    error
	calls  int
}

func (r *stubReviewer) ReviewHomework(ctx context.Context, sub ai.Submission) (*ai.Review, error) {
	r.calls++
	return r.review, r.err
}

type recordingLedger struct {
	awards []int
	err    error
}

func (l *recordingLedger) AwardXP(ctx context.Context, userID string, amount int) (*progressusecase.AwardResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.awards = append(l.awards, amount)
	return &progressusecase.AwardResult{Progress: &progressdomain.Progress{UserID: userID, TotalXP: amount}, XPAwarded: amount}, nil
}

func setup(t *testing.T, reviewer *stubReviewer, ledger *recordingLedger) (HomeworkUsecase, repository.SubmissionRepository) {
	repo := repository.NewGormSubmissionRepository(databasetest.Open(t, &domain.Submission{}))
	return NewHomeworkUsecase(repo, reviewer, ledger, zap.NewNop()), repo
}

func TestSubmitApprovedAwardsClampedXP(t *testing.T) {
	ledger := &recordingLedger{}
	uc, repo := setup(t, &stubReviewer{review: &ai.Review{Completed: true, XP: 75, Feedback: "Thorough"}}, ledger)

	out, err := uc.Submit(context.Background(), "u1", CreateRequest{Title: "Problem set 4", FileType: "pdf"})
	require.NoError(t, err)
	assert.Empty(t, out.Warning)
	assert.Equal(t, domain.StatusApproved, out.Submission.Status)
	assert.Equal(t, 50, out.Submission.XPAwarded)
	assert.Equal(t, []int{50}, ledger.awards)
	require.NotNil(t, out.Progress)

	stored, err := repo.FindByID(context.Background(), out.Submission.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.NotNil(t, stored.ReviewedAt)
}

func TestSubmitRejectedAwardsNothing(t *testing.T) {
	ledger := &recordingLedger{}
	uc, _ := setup(t, &stubReviewer{review: &ai.Review{Completed: false, XP: 30, Feedback: "Empty"}}, ledger)

	out, err := uc.Submit(context.Background(), "u1", CreateRequest{Title: "Essay"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, out.Submission.Status)
	assert.Equal(t, 0, out.Submission.XPAwarded)
	assert.Empty(t, ledger.awards)
}

func TestReviewerFailureKeepsPending(t *testing.T) {
	reviewer := &stubReviewer{err: errors.New("connection refused")}
	uc, repo := setup(t, reviewer, &recordingLedger{})
	ctx := context.Background()

	out, err := uc.Submit(ctx, "u1", CreateRequest{Title: "Lab report"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Warning)
	assert.Equal(t, domain.StatusPending, out.Submission.Status)

	// Retry once the reviewer recovers.
	reviewer.err = nil
	reviewer.review = &ai.Review{Completed: true, XP: 20}
	out, err = uc.Review(ctx, "u1", out.Submission.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, out.Submission.Status)

	_, err = uc.Review(ctx, "u1", out.Submission.ID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
	_, err = uc.Review(ctx, "u2", out.Submission.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = uc.Review(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	subs, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestLedgerFailureDoesNotUndoReview(t *testing.T) {
	uc, repo := setup(t,
		&stubReviewer{review: &ai.Review{Completed: true, XP: 30}},
		&recordingLedger{err: errors.New("deadlock")})

	out, err := uc.Submit(context.Background(), "u1", CreateRequest{Title: "Worksheet"})
	require.NoError(t, err)
	assert.Equal(t, "xp could not be awarded", out.Warning)
	assert.Nil(t, out.Progress)

	stored, err := repo.FindByID(context.Background(), out.Submission.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, 30, stored.XPAwarded)
}

func TestSubmitValidation(t *testing.T) {
	reviewer := &stubReviewer{}
	uc, _ := setup(t, reviewer, &recordingLedger{})

	_, err := uc.Submit(context.Background(), "u1", CreateRequest{Title: " "})
	assert.True(t, validation.IsValidationError(err))
	_, err = uc.Submit(context.Background(), "u1", CreateRequest{Title: "x", FileURL: "not a url"})
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, 0, reviewer.calls)
}
