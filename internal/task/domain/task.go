package domain

import (
	"strings"
	"time"

	"buddy-backend/pkg/validation"
)

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Subject groups tasks and materials under a course name.
type Subject struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

// Task is a study plan item with a deadline.
type Task struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null" validate:"required"`
	Title        string    `json:"title" gorm:"not null" validate:"notblank,max=200"`
	Description  string    `json:"description,omitempty" validate:"max=2000"`
	SubjectID    *string   `json:"subject_id,omitempty" gorm:"index"`
	Subject      *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID" validate:"-"`
	DueDate      time.Time `json:"due_date" gorm:"not null;index" validate:"required"`
	Priority     Priority  `json:"priority" gorm:"not null;default:medium" validate:"oneof=low medium high"`
	Completed    bool      `json:"completed" gorm:"not null;default:false;index"`
	ReminderSent bool      `json:"reminder_sent" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "study_plans"
}

// SubjectName is the subject label shown to users.
func (t *Task) SubjectName() string {
	if t.Subject == nil || t.Subject.Name == "" {
		return "General"
	}
	return t.Subject.Name
}

// ParsePriority maps free text onto a priority. Empty input means medium;
// anything else unknown is returned as-is and rejected by Validate.
func ParsePriority(s string) Priority {
	p := strings.ToLower(strings.TrimSpace(s))
	if p == "" {
		return PriorityMedium
	}
	return Priority(p)
}

// ParseDueDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates
// (end of that day, UTC). The result is always UTC.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(24*time.Hour - time.Second).UTC(), nil
}

// Validate checks the task before it is written.
func (t *Task) Validate() error {
	return validation.Struct(t)
}
