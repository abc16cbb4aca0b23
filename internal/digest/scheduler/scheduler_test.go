package scheduler

import (
	"context"
	"testing"

	"buddy-backend/internal/digest/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRunner struct {
	calls int
	err   error
}

func (r *countingRunner) Run(ctx context.Context) (*domain.Report, error) {
	r.calls++
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("run without deadline")
	}
	if r.err != nil {
		return nil, r.err
	}
	return domain.NewReport(), nil
}

func TestStartRegistersHourlyJob(t *testing.T) {
	s := New(&countingRunner{}, zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	jobs := s.scheduler.Jobs()
	require.Len(t, jobs, 1)
	next := jobs[0].NextRun().UTC()
	assert.Zero(t, next.Minute())
	assert.Zero(t, next.Second())
}

func TestInvalidSpec(t *testing.T) {
	s := New(&countingRunner{}, zap.NewNop())
	s.cronExpr = "not a cron"
	assert.Error(t, s.Start())
}

func TestTickRunsWithDeadline(t *testing.T) {
	r := &countingRunner{}
	s := New(r, zap.NewNop())
	s.tick()
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("db down")
	s.tick()
	assert.Equal(t, 2, r.calls)
}
