package domain

import (
	"fmt"
	"time"
)

// StreakState is everything the streak rule reads and writes.
type StreakState struct {
	Current      int
	Longest      int
	LastActivity *time.Time
}

// StreakChange describes what ApplyStreak did.
type StreakChange string

const (
	StreakUnchanged StreakChange = "unchanged"
	StreakContinued StreakChange = "continued"
	StreakStarted   StreakChange = "started"
)

// StreakOutcome is the result of one streak update.
type StreakOutcome struct {
	State     StreakState
	Change    StreakChange
	NewRecord bool
	Milestone *Milestone
}

// Milestone is a streak event worth telling the user about.
type Milestone struct {
	Streak  int    `json:"streak"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// UTCDate truncates t to midnight UTC of its UTC calendar day.
func UTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ApplyStreak advances a streak for activity on the calendar day of now (UTC).
// It has no side effects: the same inputs always produce the same outcome.
func ApplyStreak(s StreakState, now time.Time) StreakOutcome {
	today := UTCDate(now)
	yesterday := today.AddDate(0, 0, -1)

	if s.LastActivity != nil && UTCDate(*s.LastActivity).Equal(today) {
		return StreakOutcome{State: s, Change: StreakUnchanged}
	}

	next := s
	change := StreakStarted
	if s.LastActivity != nil && UTCDate(*s.LastActivity).Equal(yesterday) {
		next.Current = s.Current + 1
		change = StreakContinued
	} else {
		next.Current = 1
	}

	newRecord := next.Current > s.Longest
	if newRecord {
		next.Longest = next.Current
	}
	next.LastActivity = &today

	return StreakOutcome{
		State:     next,
		Change:    change,
		NewRecord: newRecord,
		Milestone: milestoneFor(next.Current, newRecord),
	}
}

func milestoneFor(streak int, newRecord bool) *Milestone {
	switch {
	case streak == 2:
		return &Milestone{Streak: 2, Title: "Day 2 streak!", Message: "Keep the momentum going!"}
	case streak == 7:
		return &Milestone{Streak: 7, Title: "7-day streak!", Message: "One week of consistent learning!"}
	case streak == 30:
		return &Milestone{Streak: 30, Title: "30-day streak!", Message: "A full month of dedication!"}
	case newRecord && streak > 2:
		return &Milestone{
			Streak:  streak,
			Title:   fmt.Sprintf("New personal best: %d-day streak!", streak),
			Message: "You're on fire!",
		}
	}
	return nil
}
