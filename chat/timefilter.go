package chat

import "time"

// TimeFilter selects a recency window over archived conversations. It only
// derives a view; it never mutates stored data.
type TimeFilter string

const (
	FilterAll      TimeFilter = "all"
	FilterDay      TimeFilter = "24h"
	FilterFiveDays TimeFilter = "5d"
	FilterTwoWeeks TimeFilter = "2w"
	FilterMonth    TimeFilter = "1m"
)

// Filters lists all windows in the order the UI cycles through them.
var Filters = []TimeFilter{FilterAll, FilterDay, FilterFiveDays, FilterTwoWeeks, FilterMonth}

// Label returns the human-readable name for the filter.
func (f TimeFilter) Label() string {
	switch f {
	case FilterDay:
		return "Last 24 hours"
	case FilterFiveDays:
		return "Last 5 days"
	case FilterTwoWeeks:
		return "Last 2 weeks"
	case FilterMonth:
		return "Last month"
	default:
		return "All chats"
	}
}

// Cutoff returns the inclusive lower bound of the window relative to now.
// ok is false for FilterAll, which has no cutoff. The month window uses
// calendar arithmetic, not a fixed number of hours.
func (f TimeFilter) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch f {
	case FilterDay:
		return now.Add(-24 * time.Hour), true
	case FilterFiveDays:
		return now.AddDate(0, 0, -5), true
	case FilterTwoWeeks:
		return now.AddDate(0, 0, -14), true
	case FilterMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// Matches reports whether a conversation created at t falls inside the
// window ending at now. The lower bound is inclusive.
func (f TimeFilter) Matches(t, now time.Time) bool {
	cutoff, ok := f.Cutoff(now)
	if !ok {
		return true
	}
	return !t.Before(cutoff)
}
