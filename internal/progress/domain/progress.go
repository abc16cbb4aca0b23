package domain

import (
	"errors"
	"time"
)

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 100

var ErrInvalidAmount = errors.New("xp amount must be positive")

// Progress is a user's experience, level and day streak. One row per user.
type Progress struct {
	UserID           string     `json:"user_id" gorm:"primaryKey"`
	TotalXP          int        `json:"total_xp" gorm:"not null;default:0"`
	Level            int        `json:"level" gorm:"not null;default:1"`
	CurrentStreak    int        `json:"current_streak" gorm:"not null;default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"not null;default:0"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty" gorm:"type:date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Progress) TableName() string {
	return "user_progress"
}

// NewProgress returns the zero state used when a user is first seen.
func NewProgress(userID string) *Progress {
	return &Progress{UserID: userID, Level: LevelFor(0)}
}

// LevelFor derives the level from total XP.
func LevelFor(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// Streak returns the streak-relevant part of the record.
func (p *Progress) Streak() StreakState {
	return StreakState{
		Current:      p.CurrentStreak,
		Longest:      p.LongestStreak,
		LastActivity: p.LastActivityDate,
	}
}

// ApplyStreakState copies an updated streak state back onto the record.
func (p *Progress) ApplyStreakState(s StreakState) {
	p.CurrentStreak = s.Current
	p.LongestStreak = s.Longest
	p.LastActivityDate = s.LastActivity
}
