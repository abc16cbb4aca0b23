package domain

import (
	"time"

	"buddy-backend/pkg/validation"
)

// XPPerCorrectAnswer is the reward for each correct answer.
const XPPerCorrectAnswer = 5

// Attempt is one completed run through a quiz.
type Attempt struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	QuizID         string    `json:"quiz_id" gorm:"index;not null" validate:"required"`
	UserID         string    `json:"user_id" gorm:"index;not null" validate:"required"`
	Score          int       `json:"score" gorm:"not null" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int       `json:"total_questions" gorm:"not null" validate:"gt=0"`
	Answers        []int     `json:"answers" gorm:"type:text;serializer:json"`
	CompletedAt    time.Time `json:"completed_at"`
}

func (Attempt) TableName() string {
	return "quiz_attempts"
}

func (a *Attempt) Validate() error {
	return validation.Struct(a)
}

// XP earned for the attempt.
func (a *Attempt) XP() int {
	return a.Score * XPPerCorrectAnswer
}
