package engine

import (
	"sort"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/dateutil"
	"github.com/julianstephens/ritual/internal/models"
)

// WeeklyProgress reports one weekly habit's standing within a Monday-Sunday
// week.
type WeeklyProgress struct {
	HabitID   string
	HabitName string
	Target    int
	Completed int
	Dates     []string
}

// Met reports whether the weekly target has been reached.
func (w WeeklyProgress) Met() bool {
	return w.Completed >= w.Target
}

// RiskInfo describes a streak that will break if the habit is not completed
// before the day ends.
type RiskInfo struct {
	HabitID      string
	HabitName    string
	StreakLength int
	Type         models.HabitType
}

// Stats is the aggregate statistics snapshot backing the stats views.
type Stats struct {
	TodayRate          float64
	WeekRate           float64
	ThirtyDayRate      float64
	WeeklyTargetsMet   int
	WeeklyTargetsTotal int
	PerfectDays        int
	PerfectDaysTotal   int
	TotalCompletions   int
	BestStreak         int
	CurrentBestStreak  int
	DaysSinceStart     int
	CountableHabits    int
	WeeklyHabits       int
}

// DayCompletionRate returns the fraction of active daily and timed habits
// completed on date. An empty habit set yields 0, never NaN.
func (e *Engine) DayCompletionRate(date string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dayCompletionRateLocked(date)
}

func (e *Engine) dayCompletionRateLocked(date string) float64 {
	total, completed := 0, 0
	for _, h := range e.habits {
		if !h.Countable() || !h.Active() {
			continue
		}
		total++
		if e.isCompletedLocked(h.ID, date) {
			completed++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// WeeklyProgressFor reports every active weekly habit's completions within
// the Monday-Sunday week containing date. An empty date means today.
func (e *Engine) WeeklyProgressFor(date string) []WeeklyProgress {
	e.mu.Lock()
	defer e.mu.Unlock()

	if date == "" {
		date = dateutil.FormatDate(e.now())
	}
	weekStart := dateutil.WeekStart(date)
	weekEnd := dateutil.WeekEnd(date)

	var out []WeeklyProgress
	for _, h := range sortedByOrder(e.weeklyHabitsLocked()) {
		var dates []string
		for _, c := range e.completions {
			if c.HabitID == h.ID && c.Date >= weekStart && c.Date <= weekEnd {
				dates = append(dates, c.Date)
			}
		}
		sort.Strings(dates)
		target := h.TargetPerWeek
		if target <= 0 {
			target = constants.DefaultTargetPerWeek
		}
		out = append(out, WeeklyProgress{
			HabitID:   h.ID,
			HabitName: h.Name,
			Target:    target,
			Completed: len(dates),
			Dates:     dates,
		})
	}
	return out
}

func (e *Engine) weeklyHabitsLocked() []models.Habit {
	var out []models.Habit
	for _, h := range e.habits {
		if h.Active() && h.Type == models.HabitWeekly {
			out = append(out, h)
		}
	}
	return out
}

// StreaksAtRisk returns every active daily or timed habit whose current
// streak of at least three days ends yesterday and has not been continued
// today, longest streak first.
func (e *Engine) StreaksAtRisk() []RiskInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := dateutil.FormatDate(e.now())
	var out []RiskInfo
	for _, h := range e.habits {
		if !h.Countable() || !h.Active() {
			continue
		}
		atRisk, length := dateutil.StreakAtRisk(e.completionsForHabitLocked(h.ID), constants.StreakRiskThreshold, today)
		if atRisk {
			out = append(out, RiskInfo{
				HabitID:      h.ID,
				HabitName:    h.Name,
				StreakLength: length,
				Type:         h.Type,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StreakLength > out[j].StreakLength
	})
	return out
}

// HabitStreak returns the habit's current streak length.
func (e *Engine) HabitStreak(habitID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dateutil.Streak(e.completionsForHabitLocked(habitID), dateutil.FormatDate(e.now()))
}

// HabitLongestStreak returns the habit's longest streak ever achieved.
func (e *Engine) HabitLongestStreak(habitID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return dateutil.LongestStreak(e.completionsForHabitLocked(habitID))
}

// Statistics computes the aggregate stats snapshot: today's rate, the
// week-to-date and trailing-30-day rates, perfect days this week, weekly
// targets met, best streaks, and totals.
func (e *Engine) Statistics() Stats {
	weekly := e.WeeklyProgressFor("")

	e.mu.Lock()
	defer e.mu.Unlock()

	today := dateutil.FormatDate(e.now())

	var countable []models.Habit
	weeklyCount := 0
	for _, h := range e.habits {
		if !h.Active() {
			continue
		}
		if h.Countable() {
			countable = append(countable, h)
		} else {
			weeklyCount++
		}
	}

	stats := Stats{
		CountableHabits:    len(countable),
		WeeklyHabits:       weeklyCount,
		WeeklyTargetsTotal: len(weekly),
		TotalCompletions:   len(e.completions),
		TodayRate:          e.dayCompletionRateLocked(today),
	}

	for _, w := range weekly {
		if w.Met() {
			stats.WeeklyTargetsMet++
		}
	}

	// Week-to-date rate and perfect days, Monday through today.
	weekDays := dateutil.DaysBetween(dateutil.WeekStart(today), today)
	stats.PerfectDaysTotal = len(weekDays)
	stats.WeekRate = e.rateOverLocked(countable, weekDays)
	for _, day := range weekDays {
		if len(countable) > 0 && e.dayCompletionRateLocked(day) == 1 {
			stats.PerfectDays++
		}
	}

	// Trailing 30 days, inclusive of today.
	stats.ThirtyDayRate = e.rateOverLocked(countable, dateutil.DaysBetween(dateutil.AddDays(today, -30), today))

	for _, h := range countable {
		dates := e.completionsForHabitLocked(h.ID)
		if longest := dateutil.LongestStreak(dates); longest > stats.BestStreak {
			stats.BestStreak = longest
		}
		if current := dateutil.Streak(dates, today); current > stats.CurrentBestStreak {
			stats.CurrentBestStreak = current
		}
	}

	if len(e.completions) > 0 {
		first := e.completions[0].Date
		for _, c := range e.completions {
			if c.Date < first {
				first = c.Date
			}
		}
		stats.DaysSinceStart = dateutil.DaysSince(first, today)
	}

	return stats
}

func (e *Engine) rateOverLocked(habits []models.Habit, days []string) float64 {
	possible := len(habits) * len(days)
	if possible == 0 {
		return 0
	}
	completed := 0
	for _, day := range days {
		for _, h := range habits {
			if e.isCompletedLocked(h.ID, day) {
				completed++
			}
		}
	}
	return float64(completed) / float64(possible)
}
