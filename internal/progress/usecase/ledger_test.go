package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"buddy-backend/internal/progress/domain"
	"buddy-backend/internal/progress/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memProgressRepo struct {
	mu      sync.Mutex
	rows    map[string]*domain.Progress
	failXP  error
	streaks int
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{rows: make(map[string]*domain.Progress)}
}

func (r *memProgressRepo) row(userID string) *domain.Progress {
	p, ok := r.rows[userID]
	if !ok {
		p = domain.NewProgress(userID)
		r.rows[userID] = p
	}
	return p
}

func (r *memProgressRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.row(userID)
	return &cp, nil
}

func (r *memProgressRepo) AwardXP(ctx context.Context, userID string, amount int, now time.Time) (*domain.Progress, domain.StreakOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failXP != nil {
		return nil, domain.StreakOutcome{}, r.failXP
	}
	r.streaks++
	p := r.row(userID)
	p.TotalXP += amount
	p.Level = domain.LevelFor(p.TotalXP)
	out := domain.ApplyStreak(p.Streak(), now)
	p.ApplyStreakState(out.State)
	cp := *p
	return &cp, out, nil
}

func (r *memProgressRepo) UpdateStreak(ctx context.Context, userID string, now time.Time) (*domain.Progress, domain.StreakOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streaks++
	p := r.row(userID)
	out := domain.ApplyStreak(p.Streak(), now)
	p.ApplyStreakState(out.State)
	cp := *p
	return &cp, out, nil
}

type memBadgeRepo struct {
	badges []domain.Badge
	earned map[string]map[string]bool
}

func (r *memBadgeRepo) Seed(ctx context.Context, badges []domain.Badge) error {
	r.badges = badges
	return nil
}

func (r *memBadgeRepo) List(ctx context.Context) ([]domain.Badge, error) {
	return r.badges, nil
}

func (r *memBadgeRepo) ListEarned(ctx context.Context, userID string) ([]domain.UserBadge, error) {
	var out []domain.UserBadge
	for id := range r.earned[userID] {
		out = append(out, domain.UserBadge{UserID: userID, BadgeID: id})
	}
	return out, nil
}

func (r *memBadgeRepo) Grant(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	if r.earned == nil {
		r.earned = make(map[string]map[string]bool)
	}
	if r.earned[userID] == nil {
		r.earned[userID] = make(map[string]bool)
	}
	if r.earned[userID][badgeID] {
		return false, nil
	}
	r.earned[userID][badgeID] = true
	return true, nil
}

type recordingQueue struct {
	jobs []MilestoneJob
}

func (q *recordingQueue) Enqueue(job MilestoneJob) bool {
	q.jobs = append(q.jobs, job)
	return true
}

func newTestLedger(repo *memProgressRepo, badges *memBadgeRepo, queue MilestoneQueue, now *time.Time) *ledger {
	var badgeRepo repository.BadgeRepository
	if badges != nil {
		badgeRepo = badges
	}
	l := NewLedger(repo, badgeRepo, queue, zap.NewNop()).(*ledger)
	l.clock = func() time.Time { return *now }
	return l
}

func TestAwardXP(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := newMemProgressRepo()
	l := newTestLedger(repo, &memBadgeRepo{}, nil, &now)
	ctx := context.Background()

	res, err := l.AwardXP(ctx, "u1", 120)
	require.NoError(t, err)
	assert.Equal(t, 120, res.XPAwarded)
	assert.Equal(t, 120, res.Progress.TotalXP)
	assert.Equal(t, 2, res.Progress.Level)
	assert.Equal(t, 1, res.Progress.CurrentStreak)
	assert.Equal(t, domain.StreakStarted, res.StreakChange)

	res, err = l.AwardXP(ctx, "u1", 130)
	require.NoError(t, err)
	assert.Equal(t, 250, res.Progress.TotalXP)
	assert.Equal(t, 3, res.Progress.Level)
	assert.Equal(t, 1, res.Progress.CurrentStreak, "second award on the same day must not extend the streak")
	assert.Equal(t, domain.StreakUnchanged, res.StreakChange)
}

func TestAwardXPRejectsBadInput(t *testing.T) {
	now := time.Now()
	repo := newMemProgressRepo()
	l := newTestLedger(repo, nil, nil, &now)

	_, err := l.AwardXP(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = l.AwardXP(context.Background(), "u1", -10)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = l.AwardXP(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrMissingUser)
	assert.Equal(t, 0, repo.streaks)
}

func TestAwardXPStoreFailureSkipsStreak(t *testing.T) {
	now := time.Now()
	repo := newMemProgressRepo()
	repo.failXP = errors.New("connection refused")
	l := newTestLedger(repo, nil, nil, &now)

	_, err := l.AwardXP(context.Background(), "u1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, repo.streaks)
}

func TestStreakAcrossDaysQueuesMilestones(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	queue := &recordingQueue{}
	l := newTestLedger(newMemProgressRepo(), nil, queue, &now)
	ctx := context.Background()

	for day := 0; day < 7; day++ {
		_, err := l.AwardXP(ctx, "u1", 5)
		require.NoError(t, err)
		now = now.AddDate(0, 0, 1)
	}

	var streaks []int
	for _, j := range queue.jobs {
		streaks = append(streaks, j.Milestone.Streak)
	}
	// 2, then new records from 3 to 6, then the one-week milestone.
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, streaks)
}

func TestUpdateStreakStandalone(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	repo := newMemProgressRepo()
	l := newTestLedger(repo, nil, nil, &now)

	res, err := l.UpdateStreak(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.XPAwarded)
	assert.Equal(t, 0, res.Progress.TotalXP)
	assert.Equal(t, 1, res.Progress.CurrentStreak)
}

func TestBadgesGrantedOnce(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	badges := &memBadgeRepo{badges: []domain.Badge{
		{ID: "b-first", Name: "First Steps", RequirementType: domain.RequirementTotalXP, RequirementValue: 1},
		{ID: "b-100", Name: "Centurion", RequirementType: domain.RequirementTotalXP, RequirementValue: 100},
	}}
	l := newTestLedger(newMemProgressRepo(), badges, nil, &now)
	ctx := context.Background()

	res, err := l.AwardXP(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, res.NewBadges, 1)
	assert.Equal(t, "First Steps", res.NewBadges[0].Name)

	res, err = l.AwardXP(ctx, "u1", 60)
	require.NoError(t, err)
	require.Len(t, res.NewBadges, 1)
	assert.Equal(t, "Centurion", res.NewBadges[0].Name)

	res, err = l.AwardXP(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)
}

func TestGetProgressCreatesLazily(t *testing.T) {
	now := time.Now()
	l := newTestLedger(newMemProgressRepo(), nil, nil, &now)

	p, err := l.GetProgress(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalXP)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.CurrentStreak)
}
