package domain

import (
	"time"

	"buddy-backend/pkg/validation"
)

// Material is a study resource uploaded by a user.
type Material struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null" validate:"required"`
	SubjectID *string   `json:"subject_id,omitempty" gorm:"index"`
	Title     string    `json:"title" gorm:"not null" validate:"notblank,max=300"`
	Topic     string    `json:"topic,omitempty"`
	FileType  string    `json:"file_type" gorm:"not null" validate:"notblank,max=100"`
	FileURL   string    `json:"file_url,omitempty" validate:"omitempty,url"`
	Content   string    `json:"content,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}

func (m *Material) Validate() error {
	return validation.Struct(m)
}
