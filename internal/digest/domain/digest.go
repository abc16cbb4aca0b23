package domain

import (
	"time"

	prefdomain "buddy-backend/internal/preference/domain"
	taskdomain "buddy-backend/internal/task/domain"
)

// Digest is everything needed to render one user's email.
type Digest struct {
	UserID      string
	Email       string
	Name        string
	GeneratedAt time.Time
	Counts      Counts
	Sections    []Section
}

// TaskIDs lists the tasks shown in the rendered sections.
func (d *Digest) TaskIDs() []string {
	var ids []string
	for _, s := range d.Sections {
		for _, t := range s.Tasks {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Build assembles a digest from one user's incomplete tasks.
func Build(userID, email, name string, tasks []*taskdomain.Task, pref *prefdomain.EmailPreference, now time.Time) *Digest {
	b := Group(tasks, now)
	return &Digest{
		UserID:      userID,
		Email:       email,
		Name:        name,
		GeneratedAt: now.UTC(),
		Counts:      b.Counts(),
		Sections:    b.Sections(pref),
	}
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Result is the outcome for one attempted user.
type Result struct {
	UserID     string `json:"user_id"`
	TasksCount int    `json:"tasks_count"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// Report summarizes one dispatcher run.
type Report struct {
	Success     bool     `json:"success"`
	DigestsSent int      `json:"digests_sent"`
	TotalUsers  int      `json:"total_users"`
	Results     []Result `json:"results"`
}

func NewReport() *Report {
	return &Report{Success: true, Results: []Result{}}
}

func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
	r.TotalUsers = len(r.Results)
	if res.Status == StatusSent {
		r.DigestsSent++
	}
}

// Delivery marks that a user's digest went out on a UTC date.
type Delivery struct {
	ID         string    `gorm:"primaryKey"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_digest_user_day"`
	SentOn     string    `gorm:"size:10;not null;uniqueIndex:idx_digest_user_day"`
	TasksCount int       `gorm:"not null"`
	SentAt     time.Time `gorm:"not null"`
}

func (Delivery) TableName() string {
	return "digest_deliveries"
}

// DayKey is the delivery log key for the UTC date of t.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
