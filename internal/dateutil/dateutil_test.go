package dateutil

import (
	"testing"
)

func TestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{
			name:  "no completions",
			dates: nil,
			today: "2024-01-05",
			want:  0,
		},
		{
			name:  "five consecutive days ending today",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
			today: "2024-01-05",
			want:  5,
		},
		{
			name:  "same set with a two day gap loses the streak",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
			today: "2024-01-07",
			want:  0,
		},
		{
			name:  "newest completion yesterday keeps the streak alive",
			dates: []string{"2024-01-03", "2024-01-04"},
			today: "2024-01-05",
			want:  2,
		},
		{
			name:  "gap in the middle stops the count",
			dates: []string{"2024-01-01", "2024-01-03", "2024-01-04", "2024-01-05"},
			today: "2024-01-05",
			want:  3,
		},
		{
			name:  "single completion today",
			dates: []string{"2024-01-05"},
			today: "2024-01-05",
			want:  1,
		},
		{
			name:  "unordered input",
			dates: []string{"2024-01-05", "2024-01-03", "2024-01-04"},
			today: "2024-01-05",
			want:  3,
		},
		{
			name:  "duplicate dates do not inflate the count",
			dates: []string{"2024-01-04", "2024-01-05", "2024-01-05"},
			today: "2024-01-05",
			want:  2,
		},
		{
			name:  "month boundary",
			dates: []string{"2024-01-31", "2024-02-01"},
			today: "2024-02-01",
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.dates, tt.today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{
			name:  "no completions",
			dates: nil,
			want:  0,
		},
		{
			name:  "single day",
			dates: []string{"2024-01-01"},
			want:  1,
		},
		{
			name:  "historical run longer than current",
			dates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-02-10", "2024-02-11"},
			want:  4,
		},
		{
			name:  "all disjoint",
			dates: []string{"2024-01-01", "2024-01-03", "2024-01-05"},
			want:  1,
		},
		{
			name:  "duplicates ignored",
			dates: []string{"2024-01-01", "2024-01-01", "2024-01-02"},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.dates); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakAtRisk(t *testing.T) {
	tests := []struct {
		name       string
		dates      []string
		minStreak  int
		today      string
		wantAtRisk bool
		wantLength int
	}{
		{
			name:       "three day streak ending yesterday is at risk",
			dates:      []string{"2024-01-02", "2024-01-03", "2024-01-04"},
			minStreak:  3,
			today:      "2024-01-05",
			wantAtRisk: true,
			wantLength: 3,
		},
		{
			name:       "same streak completed today is secured",
			dates:      []string{"2024-01-03", "2024-01-04", "2024-01-05"},
			minStreak:  3,
			today:      "2024-01-05",
			wantAtRisk: false,
			wantLength: 3,
		},
		{
			name:       "short streak ending yesterday is below threshold",
			dates:      []string{"2024-01-03", "2024-01-04"},
			minStreak:  3,
			today:      "2024-01-05",
			wantAtRisk: false,
			wantLength: 2,
		},
		{
			name:       "broken streak is gone, not at risk",
			dates:      []string{"2024-01-01", "2024-01-02"},
			minStreak:  3,
			today:      "2024-01-05",
			wantAtRisk: false,
			wantLength: 0,
		},
		{
			name:       "no completions",
			dates:      nil,
			minStreak:  3,
			today:      "2024-01-05",
			wantAtRisk: false,
			wantLength: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atRisk, length := StreakAtRisk(tt.dates, tt.minStreak, tt.today)
			if atRisk != tt.wantAtRisk || length != tt.wantLength {
				t.Errorf("StreakAtRisk() = (%v, %d), want (%v, %d)", atRisk, length, tt.wantAtRisk, tt.wantLength)
			}
		})
	}
}

func TestWeekBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "wednesday",
			date:      "2024-01-03",
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "monday is its own week start",
			date:      "2024-01-01",
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "sunday belongs to the preceding monday",
			date:      "2024-01-07",
			wantStart: "2024-01-01",
			wantEnd:   "2024-01-07",
		},
		{
			name:      "week spanning a month boundary",
			date:      "2024-02-01",
			wantStart: "2024-01-29",
			wantEnd:   "2024-02-04",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.date); got != tt.wantStart {
				t.Errorf("WeekStart() = %s, want %s", got, tt.wantStart)
			}
			if got := WeekEnd(tt.date); got != tt.wantEnd {
				t.Errorf("WeekEnd() = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays("2024-01-03")
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0] != "2024-01-01" || days[6] != "2024-01-07" {
		t.Errorf("unexpected week range: %s .. %s", days[0], days[6])
	}
}

func TestCalendarDays(t *testing.T) {
	days := CalendarDays("2024-02-15")
	if len(days) != 42 {
		t.Fatalf("expected 42 days, got %d", len(days))
	}
	// February 2024 starts on a Thursday; the grid opens on the Monday before.
	if days[0] != "2024-01-29" {
		t.Errorf("grid start = %s, want 2024-01-29", days[0])
	}
	start, err := ParseDate(days[0])
	if err != nil {
		t.Fatalf("invalid grid start: %v", err)
	}
	if start.Weekday().String() != "Monday" {
		t.Errorf("grid start weekday = %s, want Monday", start.Weekday())
	}
	// All days of February must be covered.
	found := make(map[string]bool, len(days))
	for _, d := range days {
		found[d] = true
	}
	for _, d := range DaysBetween("2024-02-01", "2024-02-29") {
		if !found[d] {
			t.Errorf("grid missing %s", d)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	got := DaysBetween("2024-01-30", "2024-02-02")
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d = %s, want %s", i, got[i], want[i])
		}
	}
	if days := DaysBetween("2024-01-05", "2024-01-01"); len(days) != 0 {
		t.Errorf("reversed range should be empty, got %v", days)
	}
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		today string
		want  int
	}{
		{name: "same day", date: "2024-01-05", today: "2024-01-05", want: 0},
		{name: "ten days", date: "2024-01-01", today: "2024-01-11", want: 10},
		{name: "future date", date: "2024-02-01", today: "2024-01-11", want: 0},
		{name: "invalid date", date: "nonsense", today: "2024-01-11", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(tt.date, tt.today); got != tt.want {
				t.Errorf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}
