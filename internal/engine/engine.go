// Package engine owns the canonical in-memory state of the application:
// habits, completions, timed progress, daily reviews, settings, and the
// single active timer session. Every mutation updates memory first and then
// dispatches a durable write of the affected collection; callers never wait
// on storage.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/dateutil"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

// Trigger is the celebration capability the engine fires when every daily
// ritual for a day has been completed. Implementations must not call back
// into the engine.
type Trigger interface {
	Celebrate()
}

type writeOp struct {
	key    string
	value  any
	delete bool
}

// Engine is the habit/completion state container. All exported methods are
// atomic: each takes the engine lock, applies its full read-modify-persist
// cycle, and returns with the in-memory state already final. Durable writes
// happen on a background writer in dispatch order, so the last write for a
// given key always wins.
type Engine struct {
	mu      sync.Mutex
	adapter storage.Adapter
	trigger Trigger
	now     func() time.Time

	habits        []models.Habit
	completions   []models.CompletionRecord
	timedProgress []models.TimedProgress
	reviews       []models.DailyReview
	settings      models.UserSettings
	timer         models.TimerState

	writes chan writeOp
	done   chan struct{}
	closed bool
}

// New creates an engine backed by adapter. trigger may be nil, in which case
// celebrations are skipped.
func New(adapter storage.Adapter, trigger Trigger) *Engine {
	e := &Engine{
		adapter:  adapter,
		trigger:  trigger,
		now:      time.Now,
		settings: models.DefaultSettings(),
		writes:   make(chan writeOp, 64),
		done:     make(chan struct{}),
	}
	go e.writer()
	return e
}

func (e *Engine) writer() {
	defer close(e.done)
	for op := range e.writes {
		e.apply(op)
	}
}

func (e *Engine) apply(op writeOp) {
	var err error
	if op.delete {
		err = e.adapter.Delete(op.key)
	} else {
		err = e.adapter.Save(op.key, op.value)
	}
	if err != nil {
		// Persistence is best-effort: the in-memory state is already
		// committed, so a failed write is logged and dropped.
		logger.Error("Storage write failed", "key", op.key, "error", err)
	}
}

// enqueue dispatches a write to the background writer. Dispatch order is
// FIFO, so the last write for a given key always wins. After Close the write
// happens synchronously instead of being dropped.
func (e *Engine) enqueue(op writeOp) {
	if e.closed {
		e.apply(op)
		return
	}
	e.writes <- op
}

func (e *Engine) persistHabits() {
	e.enqueue(writeOp{key: storage.KeyHabits, value: cloneSlice(e.habits)})
}

func (e *Engine) persistCompletions() {
	e.enqueue(writeOp{key: storage.KeyCompletions, value: cloneSlice(e.completions)})
}

func (e *Engine) persistTimedProgress() {
	e.enqueue(writeOp{key: storage.KeyTimedProgress, value: cloneSlice(e.timedProgress)})
}

func (e *Engine) persistReviews() {
	e.enqueue(writeOp{key: storage.KeyDailyReviews, value: cloneSlice(e.reviews)})
}

func (e *Engine) persistSettings() {
	e.enqueue(writeOp{key: storage.KeySettings, value: e.settings})
}

func (e *Engine) persistTimer() {
	if e.timer.Idle() {
		e.enqueue(writeOp{key: storage.KeyTimerState, delete: true})
		return
	}
	e.enqueue(writeOp{key: storage.KeyTimerState, value: e.timer})
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Load reads every collection from storage into memory. Missing or malformed
// collections fall back to empty defaults. A stored timer session is restored
// paused, and only if its date is still today; anything older is stale and
// discarded.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.habits = nil
	if _, err := e.adapter.Load(storage.KeyHabits, &e.habits); err != nil {
		return err
	}
	e.completions = nil
	if _, err := e.adapter.Load(storage.KeyCompletions, &e.completions); err != nil {
		return err
	}
	e.timedProgress = nil
	if _, err := e.adapter.Load(storage.KeyTimedProgress, &e.timedProgress); err != nil {
		return err
	}
	e.reviews = nil
	if _, err := e.adapter.Load(storage.KeyDailyReviews, &e.reviews); err != nil {
		return err
	}

	e.settings = models.DefaultSettings()
	if _, err := e.adapter.Load(storage.KeySettings, &e.settings); err != nil {
		return err
	}
	models.ApplyDefaultSettings(&e.settings)

	var stored models.TimerState
	found, err := e.adapter.Load(storage.KeyTimerState, &stored)
	if err != nil {
		return err
	}
	e.timer = models.TimerState{}
	if found && !stored.Idle() {
		if stored.Date == dateutil.FormatDate(e.now()) {
			// The session survives a restart, but comes back paused so no
			// time elapses while the user is away.
			stored.Running = true
			stored.Paused = true
			e.timer = stored
		} else {
			logger.Info("Discarding stale timer session", "habit", stored.HabitName, "date", stored.Date)
			e.persistTimer()
		}
	}

	return nil
}

// Close drains pending writes and shuts down the background writer. The
// engine must not be used after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.writes)
	e.mu.Unlock()
	<-e.done
}

// HabitOptions carries the type-specific fields of a new habit.
type HabitOptions struct {
	TargetPerWeek  int
	TargetDuration int // seconds
	Why            string
}

// AddHabit appends a new habit with a fresh ID. An empty name is a silent
// no-op: validation belongs to the calling layer, and the engine's contract
// for invalid input is "do nothing, change nothing".
func (e *Engine) AddHabit(name string, typ models.HabitType, opts HabitOptions) models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" || !typ.Valid() {
		return models.Habit{}
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      typ,
		CreatedAt: e.now(),
		Order:     len(e.habits),
	}
	switch typ {
	case models.HabitWeekly:
		habit.TargetPerWeek = opts.TargetPerWeek
		if habit.TargetPerWeek <= 0 {
			habit.TargetPerWeek = constants.DefaultTargetPerWeek
		}
	case models.HabitTimed:
		habit.TargetDuration = opts.TargetDuration
		if habit.TargetDuration <= 0 {
			habit.TargetDuration = constants.DefaultTargetDuration
		}
		habit.Why = opts.Why
	}

	e.habits = append(e.habits, habit)
	e.persistHabits()
	return habit
}

// UpdateHabit merges the non-nil fields of update into the matching habit.
// Unknown IDs are a no-op. The habit's type is immutable.
func (e *Engine) UpdateHabit(id string, update models.HabitUpdate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.habits {
		if e.habits[i].ID != id {
			continue
		}
		h := &e.habits[i]
		if update.Name != nil && *update.Name != "" {
			h.Name = *update.Name
		}
		if update.TargetPerWeek != nil && h.Type == models.HabitWeekly && *update.TargetPerWeek > 0 {
			h.TargetPerWeek = *update.TargetPerWeek
		}
		if update.TargetDuration != nil && h.Type == models.HabitTimed && *update.TargetDuration > 0 {
			h.TargetDuration = *update.TargetDuration
		}
		if update.Why != nil {
			h.Why = *update.Why
		}
		if update.Archived != nil {
			h.Archived = models.FlexBool(*update.Archived)
		}
		if update.Order != nil {
			h.Order = *update.Order
		}
		e.persistHabits()
		return
	}
}

// DeleteHabit removes the habit and cascades: every completion and timed
// progress entry referencing it is removed too. Unknown IDs are a no-op.
func (e *Engine) DeleteHabit(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.habits {
		if e.habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	e.habits = append(e.habits[:idx], e.habits[idx+1:]...)
	e.completions = filterInPlace(e.completions, func(c models.CompletionRecord) bool {
		return c.HabitID != id
	})
	e.timedProgress = filterInPlace(e.timedProgress, func(p models.TimedProgress) bool {
		return p.HabitID != id
	})

	// All three collections changed; all three must flush.
	e.persistHabits()
	e.persistCompletions()
	e.persistTimedProgress()
}

func filterInPlace[T any](s []T, keep func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// ReorderHabits reassigns order by the position of each ID in ids. IDs not
// present in the engine are skipped; habits absent from ids keep their order.
func (e *Engine) ReorderHabits(ids []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	position := 0
	for _, id := range ids {
		for i := range e.habits {
			if e.habits[i].ID == id {
				e.habits[i].Order = position
				position++
				break
			}
		}
	}
	e.persistHabits()
}

// ToggleCompletion flips the completion state of (habitID, date). An unknown
// habitID is a no-op. If a record exists it is removed; otherwise one is
// inserted, stamped with the current time and the optional duration in
// seconds. When an insertion completes the
// full set of active daily and timed habits for that date, and both the
// celebration setting and notifications are enabled, the celebration trigger
// fires exactly once.
func (e *Engine) ToggleCompletion(habitID, date string, duration int) {
	e.mu.Lock()

	known := false
	for i := range e.habits {
		if e.habits[i].ID == habitID {
			known = true
			break
		}
	}
	if !known {
		e.mu.Unlock()
		return
	}

	idx := -1
	for i := range e.completions {
		if e.completions[i].HabitID == habitID && e.completions[i].Date == date {
			idx = i
			break
		}
	}

	celebrate := false
	if idx >= 0 {
		e.completions = append(e.completions[:idx], e.completions[idx+1:]...)
	} else {
		e.completions = append(e.completions, models.CompletionRecord{
			HabitID:     habitID,
			Date:        date,
			CompletedAt: e.now(),
			Duration:    duration,
		})
		celebrate = e.allCountableCompleteLocked(date)
	}
	e.persistCompletions()

	enabled := e.settings.CompletionCelebrationEnabled && e.settings.NotificationsEnabled
	trigger := e.trigger
	e.mu.Unlock()

	if celebrate && enabled && trigger != nil {
		trigger.Celebrate()
	}
}

// allCountableCompleteLocked reports whether every active daily and timed
// habit has a completion on date. An empty habit set is never "all complete".
func (e *Engine) allCountableCompleteLocked(date string) bool {
	count := 0
	for _, h := range e.habits {
		if !h.Countable() || !h.Active() {
			continue
		}
		count++
		if !e.isCompletedLocked(h.ID, date) {
			return false
		}
	}
	return count > 0
}

func (e *Engine) isCompletedLocked(habitID, date string) bool {
	for _, c := range e.completions {
		if c.HabitID == habitID && c.Date == date {
			return true
		}
	}
	return false
}

// IsCompleted reports whether a completion exists for (habitID, date).
func (e *Engine) IsCompleted(habitID, date string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isCompletedLocked(habitID, date)
}

// CompletionDuration returns the recorded duration in seconds for (habitID,
// date), and whether a completion with a duration exists.
func (e *Engine) CompletionDuration(habitID, date string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.completions {
		if c.HabitID == habitID && c.Date == date {
			return c.Duration, c.Duration > 0
		}
	}
	return 0, false
}

// TimedProgressFor returns the accumulated seconds of unfinalized work for
// (habitID, date), or 0.
func (e *Engine) TimedProgressFor(habitID, date string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timedProgressLocked(habitID, date)
}

func (e *Engine) timedProgressLocked(habitID, date string) int {
	for _, p := range e.timedProgress {
		if p.HabitID == habitID && p.Date == date {
			return p.AccumulatedSeconds
		}
	}
	return 0
}

// upsertTimedProgressLocked replaces or inserts the accumulated seconds for
// (habitID, date).
func (e *Engine) upsertTimedProgressLocked(habitID, date string, seconds int) {
	for i := range e.timedProgress {
		if e.timedProgress[i].HabitID == habitID && e.timedProgress[i].Date == date {
			e.timedProgress[i].AccumulatedSeconds = seconds
			return
		}
	}
	e.timedProgress = append(e.timedProgress, models.TimedProgress{
		HabitID:            habitID,
		Date:               date,
		AccumulatedSeconds: seconds,
	})
}

// Habits returns all habits, active and archived, sorted by manual order.
func (e *Engine) Habits() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sortedByOrder(cloneSlice(e.habits))
}

// ActiveHabits returns non-archived habits sorted by manual order.
func (e *Engine) ActiveHabits() []models.Habit {
	return e.habitsOfType("")
}

// DailyHabits returns active habits of type daily, sorted by manual order.
func (e *Engine) DailyHabits() []models.Habit {
	return e.habitsOfType(models.HabitDaily)
}

// TimedHabits returns active habits of type timed, sorted by manual order.
func (e *Engine) TimedHabits() []models.Habit {
	return e.habitsOfType(models.HabitTimed)
}

// WeeklyHabits returns active habits of type weekly, sorted by manual order.
func (e *Engine) WeeklyHabits() []models.Habit {
	return e.habitsOfType(models.HabitWeekly)
}

// CountableHabits returns the active daily and timed habits, the set that
// participates in day completion rates and streaks.
func (e *Engine) CountableHabits() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.Habit
	for _, h := range e.habits {
		if h.Active() && h.Countable() {
			out = append(out, h)
		}
	}
	return sortedByOrder(out)
}

func (e *Engine) habitsOfType(typ models.HabitType) []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.Habit
	for _, h := range e.habits {
		if !h.Active() {
			continue
		}
		if typ != "" && h.Type != typ {
			continue
		}
		out = append(out, h)
	}
	return sortedByOrder(out)
}

func sortedByOrder(habits []models.Habit) []models.Habit {
	sort.SliceStable(habits, func(i, j int) bool {
		return habits[i].Order < habits[j].Order
	})
	return habits
}

// HabitByID returns the habit with the given ID.
func (e *Engine) HabitByID(id string) (models.Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range e.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// HabitByName returns the first habit whose name matches exactly.
func (e *Engine) HabitByName(name string) (models.Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range e.habits {
		if h.Name == name {
			return h, true
		}
	}
	return models.Habit{}, false
}

// CompletionsForHabit returns the sorted dates on which the habit was
// completed.
func (e *Engine) CompletionsForHabit(habitID string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completionsForHabitLocked(habitID)
}

func (e *Engine) completionsForHabitLocked(habitID string) []string {
	var dates []string
	for _, c := range e.completions {
		if c.HabitID == habitID {
			dates = append(dates, c.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// CompletionsForDate returns the IDs of habits completed on date.
func (e *Engine) CompletionsForDate(date string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ids []string
	for _, c := range e.completions {
		if c.Date == date {
			ids = append(ids, c.HabitID)
		}
	}
	return ids
}

// Settings returns a copy of the current settings.
func (e *Engine) Settings() models.UserSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings replaces the settings and persists them.
func (e *Engine) UpdateSettings(s models.UserSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	models.ApplyDefaultSettings(&s)
	e.settings = s
	e.persistSettings()
}

// AddDailyReview records today's reflection, overwriting an earlier review
// for the same day. Ratings outside 1-5 are a silent no-op.
func (e *Engine) AddDailyReview(rating int, note string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rating < 1 || rating > 5 {
		return
	}

	today := dateutil.FormatDate(e.now())
	review := models.DailyReview{
		Date:        today,
		Rating:      rating,
		Note:        note,
		CompletedAt: e.now(),
	}
	for i := range e.reviews {
		if e.reviews[i].Date == today {
			e.reviews[i] = review
			e.persistReviews()
			return
		}
	}
	e.reviews = append(e.reviews, review)
	e.persistReviews()
}

// DailyReviewFor returns the review recorded for date, if any.
func (e *Engine) DailyReviewFor(date string) (models.DailyReview, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.reviews {
		if r.Date == date {
			return r, true
		}
	}
	return models.DailyReview{}, false
}

// HasReviewedToday reports whether today's review exists.
func (e *Engine) HasReviewedToday() bool {
	_, ok := e.DailyReviewFor(dateutil.FormatDate(e.now()))
	return ok
}

// Today returns the engine's notion of the current date.
func (e *Engine) Today() string {
	return dateutil.FormatDate(e.now())
}

// SetNow overrides the engine's clock. Tests only.
func (e *Engine) SetNow(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}
