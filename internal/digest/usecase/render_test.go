package usecase

import (
	"testing"
	"time"

	"buddy-backend/internal/digest/domain"
	prefdomain "buddy-backend/internal/preference/domain"
	taskdomain "buddy-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContent(t *testing.T) {
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	tasks := []*taskdomain.Task{
		{
			ID:          "t1",
			Title:       "Essay <draft>",
			Description: "Intro & outline",
			DueDate:     time.Date(2024, 6, 12, 15, 4, 0, 0, time.UTC),
			Priority:    taskdomain.PriorityHigh,
			Subject:     &taskdomain.Subject{Name: "History"},
		},
		{
			ID:       "t2",
			Title:    "Flashcards",
			DueDate:  time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC),
			Priority: taskdomain.PriorityLow,
		},
	}
	d := domain.Build("u1", "u1@example.com", "", tasks, prefdomain.Default("u1"), now)

	html, err := Render(d)
	require.NoError(t, err)

	assert.Contains(t, html, "Hey there!")
	assert.Contains(t, html, "Wednesday, June 12, 2024")
	assert.Contains(t, html, "Essay &lt;draft&gt;")
	assert.NotContains(t, html, "<draft>")
	assert.Contains(t, html, "Intro &amp; outline")
	assert.Contains(t, html, "Wed, Jun 12, 2024, 3:04 PM UTC")
	assert.Contains(t, html, "HIGH")
	assert.Contains(t, html, "LOW")
	assert.Contains(t, html, "History")
	assert.Contains(t, html, "General")
	assert.Contains(t, html, "Due Today (1)")
	assert.Contains(t, html, "Due This Week (1)")
	assert.NotContains(t, html, "Coming Up")
	assert.NotContains(t, html, "OVERDUE")
}

func TestSubject(t *testing.T) {
	tests := []struct {
		counts domain.Counts
		want   string
	}{
		{domain.Counts{TotalPending: 1}, "Daily Study Digest - 1 Task"},
		{domain.Counts{TotalPending: 4}, "Daily Study Digest - 4 Tasks"},
		{domain.Counts{TotalPending: 4, Overdue: 2}, "Daily Study Digest - 4 Tasks (2 Overdue!)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Subject(&domain.Digest{Counts: tt.counts}))
	}
}
