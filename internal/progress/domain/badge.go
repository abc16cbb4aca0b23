package domain

import "time"

// RequirementType names the progress metric a badge is earned on.
type RequirementType string

const (
	RequirementTotalXP       RequirementType = "total_xp"
	RequirementLevel         RequirementType = "level"
	RequirementCurrentStreak RequirementType = "current_streak"
	RequirementLongestStreak RequirementType = "longest_streak"
)

// Badge is a catalog entry. Badges are unique by name.
type Badge struct {
	ID               string          `json:"id" gorm:"primaryKey" yaml:"-"`
	Name             string          `json:"name" gorm:"uniqueIndex;not null" yaml:"name"`
	Description      string          `json:"description" yaml:"description"`
	Icon             string          `json:"icon" yaml:"icon"`
	RequirementType  RequirementType `json:"requirement_type" gorm:"not null" yaml:"requirement_type"`
	RequirementValue int             `json:"requirement_value" gorm:"not null" yaml:"requirement_value"`
	CreatedAt        time.Time       `json:"created_at" yaml:"-"`
}

// SatisfiedBy reports whether p meets the badge requirement.
func (b Badge) SatisfiedBy(p Progress) bool {
	var have int
	switch b.RequirementType {
	case RequirementTotalXP:
		have = p.TotalXP
	case RequirementLevel:
		have = p.Level
	case RequirementCurrentStreak:
		have = p.CurrentStreak
	case RequirementLongestStreak:
		have = p.LongestStreak
	default:
		return false
	}
	return have >= b.RequirementValue
}

// UserBadge records that a user earned a badge.
type UserBadge struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID  string    `json:"badge_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	EarnedAt time.Time `json:"earned_at"`
	Badge    *Badge    `json:"badge,omitempty" gorm:"foreignKey:BadgeID"`
}
