package domain

import (
	"math"
	"time"

	prefdomain "buddy-backend/internal/preference/domain"
	taskdomain "buddy-backend/internal/task/domain"
)

// Category is the digest section a task falls into.
type Category int

const (
	CategoryOverdue Category = iota
	CategoryToday
	CategoryThisWeek
	CategoryUpcoming
)

func (c Category) String() string {
	switch c {
	case CategoryOverdue:
		return "overdue"
	case CategoryToday:
		return "today"
	case CategoryThisWeek:
		return "this_week"
	default:
		return "upcoming"
	}
}

// Categorize places a due time relative to now. A task due exactly now is
// overdue. Otherwise the UTC calendar date decides "today", and whole days
// rounded up decide the week boundary.
func Categorize(due, now time.Time) Category {
	due, now = due.UTC(), now.UTC()
	if !due.After(now) {
		return CategoryOverdue
	}
	if sameUTCDate(due, now) {
		return CategoryToday
	}
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	if days <= 7 {
		return CategoryThisWeek
	}
	return CategoryUpcoming
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Buckets holds one user's incomplete tasks split by category, each in the
// order the tasks were given.
type Buckets struct {
	Overdue  []*taskdomain.Task
	Today    []*taskdomain.Task
	ThisWeek []*taskdomain.Task
	Upcoming []*taskdomain.Task
}

func Group(tasks []*taskdomain.Task, now time.Time) Buckets {
	var b Buckets
	for _, t := range tasks {
		switch Categorize(t.DueDate, now) {
		case CategoryOverdue:
			b.Overdue = append(b.Overdue, t)
		case CategoryToday:
			b.Today = append(b.Today, t)
		case CategoryThisWeek:
			b.ThisWeek = append(b.ThisWeek, t)
		default:
			b.Upcoming = append(b.Upcoming, t)
		}
	}
	return b
}

// Counts are the summary numbers. They ignore the include flags.
type Counts struct {
	Overdue      int
	Today        int
	ThisWeek     int
	TotalPending int
}

func (b Buckets) Counts() Counts {
	return Counts{
		Overdue:      len(b.Overdue),
		Today:        len(b.Today),
		ThisWeek:     len(b.ThisWeek),
		TotalPending: len(b.Overdue) + len(b.Today) + len(b.ThisWeek) + len(b.Upcoming),
	}
}

// Section is one rendered group of tasks.
type Section struct {
	Category Category
	Title    string
	Color    string
	Tasks    []*taskdomain.Task
}

// Sections returns the non-empty buckets the preference includes, in
// display order.
func (b Buckets) Sections(pref *prefdomain.EmailPreference) []Section {
	all := []struct {
		include bool
		section Section
	}{
		{pref.IncludeOverdue, Section{CategoryOverdue, "OVERDUE - Immediate Action Required", "#dc2626", b.Overdue}},
		{pref.IncludeToday, Section{CategoryToday, "Due Today", "#f59e0b", b.Today}},
		{pref.IncludeThisWeek, Section{CategoryThisWeek, "Due This Week", "#2563eb", b.ThisWeek}},
		{pref.IncludeUpcoming, Section{CategoryUpcoming, "Coming Up", "#6b7280", b.Upcoming}},
	}

	var out []Section
	for _, s := range all {
		if s.include && len(s.section.Tasks) > 0 {
			out = append(out, s.section)
		}
	}
	return out
}
