package repository

import (
	"context"
	"testing"
	"time"

	"buddy-backend/internal/task/domain"
	"buddy-backend/pkg/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFindIncompleteOrdersAndPreloads(t *testing.T) {
	db := databasetest.Open(t, &domain.Subject{}, &domain.Task{})
	repo := NewGormTaskRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&domain.Subject{ID: "math", UserID: "u1", Name: "Calculus"}).Error)

	tasks := []*domain.Task{
		{UserID: "u1", Title: "late", DueDate: base.Add(48 * time.Hour), Priority: domain.PriorityLow},
		{UserID: "u2", Title: "early", DueDate: base, Priority: domain.PriorityHigh, SubjectID: strPtr("math")},
		{UserID: "u1", Title: "done", DueDate: base.Add(time.Hour), Priority: domain.PriorityMedium, Completed: true},
	}
	for _, task := range tasks {
		require.NoError(t, repo.Create(ctx, task))
	}

	got, err := repo.FindIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Title)
	assert.Equal(t, "Calculus", got[0].SubjectName())
	assert.Equal(t, "late", got[1].Title)
	assert.Equal(t, "General", got[1].SubjectName())
}

func TestFindByUserIDFiltersCompletion(t *testing.T) {
	repo := NewGormTaskRepository(databasetest.Open(t, &domain.Subject{}, &domain.Task{}))
	ctx := context.Background()
	due := time.Now().UTC().Add(24 * time.Hour)

	for i, completed := range []bool{false, false, true} {
		require.NoError(t, repo.Create(ctx, &domain.Task{
			UserID:    "u1",
			Title:     []string{"a", "b", "c"}[i],
			DueDate:   due.Add(time.Duration(i) * time.Hour),
			Priority:  domain.PriorityMedium,
			Completed: completed,
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Task{UserID: "u2", Title: "other", DueDate: due, Priority: domain.PriorityLow}))

	all, total, err := repo.FindByUserID(ctx, "u1", nil, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	open := false
	pending, total, err := repo.FindByUserID(ctx, "u1", &open, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "a", pending[0].Title)

	page, _, err := repo.FindByUserID(ctx, "u1", nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)
}

func TestMarkReminderSent(t *testing.T) {
	repo := NewGormTaskRepository(databasetest.Open(t, &domain.Subject{}, &domain.Task{}))
	ctx := context.Background()

	a := &domain.Task{UserID: "u1", Title: "a", DueDate: time.Now().UTC(), Priority: domain.PriorityLow}
	b := &domain.Task{UserID: "u1", Title: "b", DueDate: time.Now().UTC(), Priority: domain.PriorityLow}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.MarkReminderSent(ctx, nil))
	require.NoError(t, repo.MarkReminderSent(ctx, []string{a.ID}))

	gotA, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, gotA.ReminderSent)
	gotB, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, gotB.ReminderSent)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
