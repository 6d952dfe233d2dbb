package engine

import (
	"github.com/julianstephens/ritual/internal/dateutil"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
)

// Timer returns a copy of the current timer session state.
func (e *Engine) Timer() models.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer
}

// StartTimer begins a session for the given timed habit. The session counts
// toward today, fixed now for the whole session even if midnight passes while
// the timer runs, and resumes from any partial progress already accumulated
// for (habit, today) rather than zero.
//
// Starting is a no-op if the habit does not exist, has no target duration
// (non-timed), or another session is already active.
func (e *Engine) StartTimer(habitID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timer.Idle() {
		logger.Warn("Ignoring timer start while a session is active", "active", e.timer.HabitName)
		return
	}

	var habit models.Habit
	found := false
	for _, h := range e.habits {
		if h.ID == habitID {
			habit = h
			found = true
			break
		}
	}
	if !found || habit.TargetDuration <= 0 {
		return
	}

	today := dateutil.FormatDate(e.now())
	startedAt := e.now()
	e.timer = models.TimerState{
		HabitID:        habit.ID,
		HabitName:      habit.Name,
		TargetDuration: habit.TargetDuration,
		ElapsedTime:    e.timedProgressLocked(habit.ID, today),
		Running:        true,
		Paused:         false,
		StartedAt:      &startedAt,
		Date:           today,
	}
	e.persistTimer()
}

// PauseTimer suspends the tick without touching elapsed time.
func (e *Engine) PauseTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer.Idle() {
		return
	}
	e.timer.Paused = true
	e.persistTimer()
}

// ResumeTimer re-enables the tick after a pause.
func (e *Engine) ResumeTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer.Idle() {
		return
	}
	e.timer.Paused = false
	e.persistTimer()
}

// TickTimer advances elapsed time by one second. The caller drives this from
// a 1-second periodic tick; the call is a no-op unless the session is running
// and not paused, so an orphaned tick can never accumulate time.
func (e *Engine) TickTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.timer.Ticking() {
		return
	}
	e.timer.ElapsedTime++
	e.persistTimer()
}

// StopTimer ends the session without completing the habit. Elapsed time, if
// any, is saved as timed progress for (habit, session date) so a later
// session resumes where this one left off. Stopping with no active session
// still resets the timer state.
func (e *Engine) StopTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timer.Idle() && e.timer.ElapsedTime > 0 {
		e.upsertTimedProgressLocked(e.timer.HabitID, e.timer.Date, e.timer.ElapsedTime)
		e.persistTimedProgress()
	}
	e.timer = models.TimerState{}
	e.persistTimer()
}

// CompleteTimer finalizes the session into a completion record for (habit,
// session date) carrying the elapsed time as its duration, and removes the
// timed progress entry the completion supersedes. Completing with no active
// session still resets the timer state.
func (e *Engine) CompleteTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timer.Idle() {
		habitID, date := e.timer.HabitID, e.timer.Date
		if !e.isCompletedLocked(habitID, date) {
			e.completions = append(e.completions, models.CompletionRecord{
				HabitID:     habitID,
				Date:        date,
				CompletedAt: e.now(),
				Duration:    e.timer.ElapsedTime,
			})
			e.persistCompletions()
		}
		before := len(e.timedProgress)
		e.timedProgress = filterInPlace(e.timedProgress, func(p models.TimedProgress) bool {
			return !(p.HabitID == habitID && p.Date == date)
		})
		if len(e.timedProgress) != before {
			e.persistTimedProgress()
		}
	}
	e.timer = models.TimerState{}
	e.persistTimer()
}
