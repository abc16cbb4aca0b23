package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DefaultDigestTime = "08:00"

var digestTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

var ErrInvalidDigestTime = errors.New("digest_time must be HH:MM in 24-hour UTC")

// EmailPreference controls whether and when a user receives the daily
// digest, and which sections it shows.
type EmailPreference struct {
	UserID             string    `json:"user_id" gorm:"primaryKey"`
	DailyDigestEnabled bool      `json:"daily_digest_enabled" gorm:"not null"`
	DigestTime         string    `json:"digest_time" gorm:"not null;default:'08:00'"`
	IncludeOverdue     bool      `json:"include_overdue" gorm:"not null"`
	IncludeToday       bool      `json:"include_today" gorm:"not null"`
	IncludeThisWeek    bool      `json:"include_this_week" gorm:"not null"`
	IncludeUpcoming    bool      `json:"include_upcoming" gorm:"not null"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (EmailPreference) TableName() string {
	return "email_preferences"
}

// Default is the preference applied to users who never saved one.
func Default(userID string) *EmailPreference {
	return &EmailPreference{
		UserID:             userID,
		DailyDigestEnabled: true,
		DigestTime:         DefaultDigestTime,
		IncludeOverdue:     true,
		IncludeToday:       true,
		IncludeThisWeek:    true,
		IncludeUpcoming:    true,
	}
}

// ValidDigestTime reports whether s is HH:MM (seconds allowed and ignored).
func ValidDigestTime(s string) bool {
	return digestTimePattern.MatchString(strings.TrimSpace(s))
}

// NormalizeDigestTime trims s to HH:MM.
func NormalizeDigestTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !ValidDigestTime(s) {
		return "", ErrInvalidDigestTime
	}
	return s[:5], nil
}

// DeliveryHour is the UTC hour the digest should go out.
func (p *EmailPreference) DeliveryHour() (int, error) {
	if !ValidDigestTime(p.DigestTime) {
		return 0, errors.Wrapf(ErrInvalidDigestTime, "got %q", p.DigestTime)
	}
	return strconv.Atoi(strings.TrimSpace(p.DigestTime)[:2])
}
