package domain

import "time"

// Profile is the user directory row. The auth provider owns the account;
// this table only holds what the digest needs to address a user.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName is the name used in greetings.
func (p *Profile) DisplayName() string {
	if p == nil || p.FullName == "" {
		return "there"
	}
	return p.FullName
}
