package domain

import (
	"time"

	"buddy-backend/pkg/validation"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

const (
	MinReviewXP = 10
	MaxReviewXP = 50
)

// Submission is a piece of homework handed in for review.
type Submission struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null" validate:"required"`
	SubjectID   *string    `json:"subject_id,omitempty"`
	Title       string     `json:"title" gorm:"not null" validate:"notblank,max=200"`
	Description string     `json:"description,omitempty" validate:"max=5000"`
	FileType    string     `json:"file_type,omitempty" validate:"max=100"`
	FileURL     string     `json:"file_url,omitempty" validate:"omitempty,url"`
	Status      Status     `json:"status" gorm:"not null;default:pending"`
	XPAwarded   int        `json:"xp_awarded" gorm:"not null;default:0"`
	Feedback    string     `json:"feedback,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Submission) TableName() string {
	return "homework_submissions"
}

func (s *Submission) Validate() error {
	return validation.Struct(s)
}

// ClampXP keeps a reviewer's XP suggestion inside the allowed range.
func ClampXP(xp int) int {
	if xp < MinReviewXP {
		return MinReviewXP
	}
	if xp > MaxReviewXP {
		return MaxReviewXP
	}
	return xp
}

// ApplyReview records a verdict. Approved work earns the clamped XP and
// rejected work earns none.
func (s *Submission) ApplyReview(completed bool, suggestedXP int, feedback string, at time.Time) {
	reviewed := at.UTC()
	s.ReviewedAt = &reviewed
	s.Feedback = feedback
	if completed {
		s.Status = StatusApproved
		s.XPAwarded = ClampXP(suggestedXP)
		return
	}
	s.Status = StatusRejected
	s.XPAwarded = 0
}
