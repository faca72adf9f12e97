package taskfilter

import (
	"fmt"
	"time"
)

// DueClass buckets a task's due date relative to a reference day.
type DueClass int

const (
	DueNone DueClass = iota
	DueOverdue
	DueToday
	DueTomorrow
	DueUpcoming
)

func (c DueClass) String() string {
	switch c {
	case DueOverdue:
		return "overdue"
	case DueToday:
		return "today"
	case DueTomorrow:
		return "tomorrow"
	case DueUpcoming:
		return "upcoming"
	default:
		return "nodate"
	}
}

const dueDateLayout = "2006-01-02"

// ClassifyDue buckets dueDate (a YYYY-MM-DD calendar date, no time component)
// against today and returns the bucket with its display label. Tomorrow is a
// subtype of Upcoming for filtering purposes. An empty or malformed dueDate
// classifies as DueNone.
func ClassifyDue(dueDate string, today time.Time) (DueClass, string) {
	if dueDate == "" {
		return DueNone, ""
	}
	due, err := time.Parse(dueDateLayout, dueDate)
	if err != nil {
		return DueNone, ""
	}

	// Day difference over the calendar, not elapsed hours: both dates are
	// re-anchored at UTC midnight so DST transitions in today's location
	// cannot shorten or stretch a day.
	y, m, d := today.Date()
	days := int(due.Sub(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	switch {
	case days < 0:
		return DueOverdue, fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return DueToday, "Today"
	case days == 1:
		return DueTomorrow, "Tomorrow"
	default:
		return DueUpcoming, due.Format("Jan 2")
	}
}

// matchesDueFilter reports whether a due class satisfies a due filter value.
// Tasks without a due date only match "nodate" (or no filter at all).
func matchesDueFilter(class DueClass, filter string) bool {
	switch filter {
	case FilterAll, "":
		return true
	case "overdue":
		return class == DueOverdue
	case "today":
		return class == DueToday
	case "upcoming":
		return class == DueTomorrow || class == DueUpcoming
	case "nodate":
		return class == DueNone
	default:
		return false
	}
}
