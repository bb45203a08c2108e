package models

import (
	"fmt"
	"time"
)

// Wire layouts for the todo due date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Todo is a task record owned by a user. DateFor and TimeFor are either
// both set or both nil; DateFor uses DateLayout, TimeFor uses TimeLayout.
type Todo struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DateFor     *string
	TimeFor     *string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DueAt combines DateFor and TimeFor into a local-time instant.
// The second return value is false when the todo has no due moment.
func (t Todo) DueAt() (time.Time, bool) {
	if t.DateFor == nil || t.TimeFor == nil {
		return time.Time{}, false
	}
	return CombineDateTime(*t.DateFor, *t.TimeFor)
}

// CombineDateTime parses a date and a time-of-day into a single local instant.
func CombineDateTime(date, clock string) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.Local), true
}

// TimeRemaining renders the human-readable countdown shown in list views.
// Days, hours and minutes are truncated, not rounded.
func (t Todo) TimeRemaining(now time.Time) string {
	due, ok := t.DueAt()
	if !ok {
		return "Date non définie"
	}
	remaining := due.Sub(now)
	if remaining <= 0 {
		return "Échéance dépassée"
	}
	totalMinutes := int64(remaining / time.Minute)
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes / 60) % 24
	minutes := totalMinutes % 60
	return fmt.Sprintf("%dj %dh %dmin", days, hours, minutes)
}
