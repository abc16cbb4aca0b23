package usecase

import (
	"context"
	"testing"

	"buddy-backend/internal/material/domain"
	"buddy-backend/internal/material/repository"
	progressusecase "buddy-backend/internal/progress/usecase"
	"buddy-backend/pkg/database/databasetest"
	"buddy-backend/pkg/validation"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingLedger struct {
	awards []int
	err    error
}

func (l *recordingLedger) AwardXP(ctx context.Context, userID string, amount int) (*progressusecase.AwardResult, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.awards = append(l.awards, amount)
	return &progressusecase.AwardResult{XPAwarded: amount}, nil
}

func newRepo(t *testing.T) repository.MaterialRepository {
	return repository.NewGormMaterialRepository(databasetest.Open(t, &domain.Material{}))
}

func TestUploadAwardsXP(t *testing.T) {
	ledger := &recordingLedger{}
	uc := NewMaterialUsecase(newRepo(t), ledger, 10, zap.NewNop())

	out, err := uc.Upload(context.Background(), "u1", UploadRequest{Title: "Cell biology notes", FileType: "pdf"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Material.ID)
	assert.Equal(t, 10, out.XPEarned)
	assert.Equal(t, []int{10}, ledger.awards)
}

func TestUploadWithoutRewardSkipsLedger(t *testing.T) {
	ledger := &recordingLedger{}
	uc := NewMaterialUsecase(newRepo(t), ledger, 0, zap.NewNop())

	out, err := uc.Upload(context.Background(), "u1", UploadRequest{Title: "Notes", FileType: "txt"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.XPEarned)
	assert.Empty(t, ledger.awards)
}

func TestUploadValidation(t *testing.T) {
	uc := NewMaterialUsecase(newRepo(t), &recordingLedger{}, 10, zap.NewNop())

	_, err := uc.Upload(context.Background(), "u1", UploadRequest{Title: "  ", FileType: "pdf"})
	assert.True(t, validation.IsValidationError(err))
	_, err = uc.Upload(context.Background(), "u1", UploadRequest{Title: "Notes"})
	assert.True(t, validation.IsValidationError(err))
}

func TestUploadLedgerFailureIsWarning(t *testing.T) {
	uc := NewMaterialUsecase(newRepo(t), &recordingLedger{err: errors.New("down")}, 10, zap.NewNop())

	out, err := uc.Upload(context.Background(), "u1", UploadRequest{Title: "Notes", FileType: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.XPEarned)
	assert.NotEmpty(t, out.Warning)
}

func TestListFiltersBySubject(t *testing.T) {
	uc := NewMaterialUsecase(newRepo(t), &recordingLedger{}, 0, zap.NewNop())
	ctx := context.Background()
	math := "math"

	_, err := uc.Upload(ctx, "u1", UploadRequest{Title: "Algebra", FileType: "pdf", SubjectID: &math})
	require.NoError(t, err)
	_, err = uc.Upload(ctx, "u1", UploadRequest{Title: "Poems", FileType: "pdf"})
	require.NoError(t, err)
	_, err = uc.Upload(ctx, "u2", UploadRequest{Title: "Other", FileType: "pdf", SubjectID: &math})
	require.NoError(t, err)

	all, err := uc.List(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyMath, err := uc.List(ctx, "u1", &math)
	require.NoError(t, err)
	require.Len(t, onlyMath, 1)
	assert.Equal(t, "Algebra", onlyMath[0].Title)
}
