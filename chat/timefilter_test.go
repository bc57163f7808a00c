package chat

import (
	"testing"
	"time"
)

func TestTimeFilterMatches(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter TimeFilter
		t      time.Time
		want   bool
	}{
		{"all includes ancient", FilterAll, now.AddDate(-10, 0, 0), true},
		{"24h includes recent", FilterDay, now.Add(-1 * time.Hour), true},
		{"24h boundary is inclusive", FilterDay, now.Add(-24 * time.Hour), true},
		{"24h excludes just beyond", FilterDay, now.Add(-24*time.Hour - time.Second), false},
		{"5d includes fourth day", FilterFiveDays, now.AddDate(0, 0, -4), true},
		{"5d boundary is inclusive", FilterFiveDays, now.AddDate(0, 0, -5), true},
		{"5d excludes sixth day", FilterFiveDays, now.AddDate(0, 0, -6), false},
		{"2w boundary is inclusive", FilterTwoWeeks, now.AddDate(0, 0, -14), true},
		{"2w excludes fifteenth day", FilterTwoWeeks, now.AddDate(0, 0, -15), false},
		{"1m is a calendar month", FilterMonth, time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC), true},
		{"1m excludes previous month", FilterMonth, time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.t, now); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestTimeFilterCutoffAll(t *testing.T) {
	if _, ok := FilterAll.Cutoff(time.Now()); ok {
		t.Error("FilterAll should report no cutoff")
	}
}
