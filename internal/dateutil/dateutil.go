// Package dateutil provides the calendar arithmetic behind streaks, weekly
// targets, and calendar rendering. All functions operate on YYYY-MM-DD date
// strings; weeks start on Monday.
package dateutil

import (
	"sort"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
)

// FormatDate renders t as a YYYY-MM-DD string.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string. The returned time is midnight UTC;
// callers only ever do whole-day arithmetic with it.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, date)
}

// Today returns the current date string in the local timezone.
func Today() string {
	return FormatDate(time.Now())
}

// AddDays returns the date n calendar days after date. Invalid input is
// returned unchanged.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// DaysBetween returns every date from start through end inclusive. An empty
// slice is returned if end precedes start or either date is invalid.
func DaysBetween(start, end string) []string {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil
	}
	var days []string
	for !s.After(e) {
		days = append(days, FormatDate(s))
		s = s.AddDate(0, 0, 1)
	}
	return days
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return FormatDate(t.AddDate(0, 0, -offset))
}

// WeekEnd returns the Sunday of the week containing date.
func WeekEnd(date string) string {
	return AddDays(WeekStart(date), 6)
}

// WeekDays returns the seven dates of the Monday-to-Sunday week containing
// date.
func WeekDays(date string) []string {
	return DaysBetween(WeekStart(date), WeekEnd(date))
}

// CalendarDays returns a Monday-aligned grid of six full weeks (42 days)
// covering the month containing date, padded with trailing and leading days
// of the neighboring months.
func CalendarDays(date string) []string {
	t, err := ParseDate(date)
	if err != nil {
		return nil
	}
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	gridStart := WeekStart(FormatDate(monthStart))
	return DaysBetween(gridStart, AddDays(gridStart, 41))
}

// SameMonth reports whether date falls in the same calendar month as ref.
func SameMonth(date, ref string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	r, err := ParseDate(ref)
	if err != nil {
		return false
	}
	return d.Year() == r.Year() && d.Month() == r.Month()
}

// Streak returns the length of the run of consecutive completed days ending
// at today or yesterday. A streak survives one day of grace: if the newest
// completion is yesterday the streak is still current until today ends. If
// the newest completion is older than yesterday the streak is 0.
func Streak(completedDates []string, today string) int {
	if len(completedDates) == 0 {
		return 0
	}
	sorted := append([]string(nil), completedDates...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	yesterday := AddDays(today, -1)
	if sorted[0] != today && sorted[0] != yesterday {
		return 0
	}

	streak := 1
	current := sorted[0]
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] {
		case AddDays(current, -1):
			streak++
			current = sorted[i]
		case current:
			// duplicate entry for the same day
		default:
			return streak
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days ever
// achieved, regardless of when it happened.
func LongestStreak(completedDates []string) int {
	if len(completedDates) == 0 {
		return 0
	}
	sorted := append([]string(nil), completedDates...)
	sort.Strings(sorted)

	longest, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch sorted[i] {
		case AddDays(sorted[i-1], 1):
			current++
			if current > longest {
				longest = current
			}
		case sorted[i-1]:
			// duplicate entry for the same day
		default:
			current = 1
		}
	}
	return longest
}

// StreakAtRisk reports whether a streak is in jeopardy: the newest completion
// is exactly yesterday (not today) and the current streak is at least
// minStreak long. A completion today means the streak is already secured. A
// newest completion older than yesterday means the streak is already broken,
// not at risk, and the reported length is 0.
func StreakAtRisk(completedDates []string, minStreak int, today string) (bool, int) {
	if len(completedDates) == 0 {
		return false, 0
	}
	sorted := append([]string(nil), completedDates...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	switch sorted[0] {
	case today:
		return false, Streak(completedDates, today)
	case AddDays(today, -1):
		streak := Streak(completedDates, today)
		return streak >= minStreak, streak
	}
	return false, 0
}

// DaysSince returns the number of whole days between date and today, or 0 if
// date is invalid or in the future.
func DaysSince(date, today string) int {
	d, err := ParseDate(date)
	if err != nil {
		return 0
	}
	t, err := ParseDate(today)
	if err != nil {
		return 0
	}
	days := int(t.Sub(d).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
