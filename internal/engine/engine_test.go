package engine

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

// newTestEngine returns an engine on a fresh JSON adapter with a fixed clock.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngineAt(t, "2024-01-05")
}

func newTestEngineAt(t *testing.T, today string) *Engine {
	t.Helper()
	adapter := storage.NewJSONAdapter(filepath.Join(t.TempDir(), "data"))
	if err := adapter.Init(); err != nil {
		t.Fatalf("failed to init adapter: %v", err)
	}
	e := New(adapter, nil)
	t.Cleanup(e.Close)
	setToday(e, today)
	if err := e.Load(); err != nil {
		t.Fatalf("failed to load engine: %v", err)
	}
	return e
}

func setToday(e *Engine, today string) {
	fixed, err := time.Parse("2006-01-02", today)
	if err != nil {
		panic(err)
	}
	// Noon, so "today" is unambiguous regardless of timezone handling.
	fixed = fixed.Add(12 * time.Hour)
	e.SetNow(func() time.Time { return fixed })
}

// countingTrigger records celebration fires.
type countingTrigger struct {
	mu    sync.Mutex
	fires int
}

func (c *countingTrigger) Celebrate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fires++
}

func (c *countingTrigger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fires
}

func TestAddHabitDefaults(t *testing.T) {
	tests := []struct {
		name         string
		habitName    string
		typ          models.HabitType
		opts         HabitOptions
		wantPerWeek  int
		wantDuration int
	}{
		{
			name:      "daily habit carries no targets",
			habitName: "Read",
			typ:       models.HabitDaily,
			opts:      HabitOptions{TargetPerWeek: 5, TargetDuration: 600},
		},
		{
			name:        "weekly habit defaults to one per week",
			habitName:   "Swim",
			typ:         models.HabitWeekly,
			wantPerWeek: 1,
		},
		{
			name:        "weekly habit keeps explicit target",
			habitName:   "Run",
			typ:         models.HabitWeekly,
			opts:        HabitOptions{TargetPerWeek: 3},
			wantPerWeek: 3,
		},
		{
			name:         "timed habit defaults to thirty minutes",
			habitName:    "Meditate",
			typ:          models.HabitTimed,
			wantDuration: 1800,
		},
		{
			name:         "timed habit keeps explicit duration",
			habitName:    "Practice",
			typ:          models.HabitTimed,
			opts:         HabitOptions{TargetDuration: 900, Why: "recital in June"},
			wantDuration: 900,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			habit := e.AddHabit(tt.habitName, tt.typ, tt.opts)
			if habit.ID == "" {
				t.Fatal("AddHabit() returned zero habit")
			}
			if habit.TargetPerWeek != tt.wantPerWeek {
				t.Errorf("TargetPerWeek = %d, want %d", habit.TargetPerWeek, tt.wantPerWeek)
			}
			if habit.TargetDuration != tt.wantDuration {
				t.Errorf("TargetDuration = %d, want %d", habit.TargetDuration, tt.wantDuration)
			}
			if tt.opts.Why != "" && habit.Why != tt.opts.Why {
				t.Errorf("Why = %q, want %q", habit.Why, tt.opts.Why)
			}
		})
	}
}

func TestAddHabitEmptyNameIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	habit := e.AddHabit("", models.HabitDaily, HabitOptions{})
	if habit.ID != "" {
		t.Error("empty name produced a habit")
	}
	if len(e.Habits()) != 0 {
		t.Error("state changed for empty-name add")
	}
}

func TestAddHabitAppendsToEnd(t *testing.T) {
	e := newTestEngine(t)
	a := e.AddHabit("A", models.HabitDaily, HabitOptions{})
	b := e.AddHabit("B", models.HabitDaily, HabitOptions{})
	if a.Order != 0 || b.Order != 1 {
		t.Errorf("orders = %d, %d; want 0, 1", a.Order, b.Order)
	}
}

func TestDeleteHabitRestoresPriorListAndCascades(t *testing.T) {
	e := newTestEngine(t)
	e.AddHabit("Keep 1", models.HabitDaily, HabitOptions{})
	e.AddHabit("Keep 2", models.HabitTimed, HabitOptions{})
	before := e.Habits()

	victim := e.AddHabit("Doomed", models.HabitTimed, HabitOptions{})
	e.ToggleCompletion(victim.ID, "2024-01-04", 600)
	e.StartTimer(victim.ID)
	e.TickTimer()
	e.StopTimer() // leaves timed progress behind

	e.DeleteHabit(victim.ID)

	after := e.Habits()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("habit list not restored:\nbefore: %+v\nafter:  %+v", before, after)
	}
	if e.IsCompleted(victim.ID, "2024-01-04") {
		t.Error("completion survived habit deletion")
	}
	if e.TimedProgressFor(victim.ID, "2024-01-05") != 0 {
		t.Error("timed progress survived habit deletion")
	}
}

func TestDeleteUnknownHabitIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	e.AddHabit("Stay", models.HabitDaily, HabitOptions{})
	e.DeleteHabit("no-such-id")
	if len(e.Habits()) != 1 {
		t.Error("unknown delete mutated state")
	}
}

func TestToggleUnknownHabitIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	e.AddHabit("Stay", models.HabitDaily, HabitOptions{})

	e.ToggleCompletion("no-such-id", e.Today(), 0)

	if e.IsCompleted("no-such-id", e.Today()) {
		t.Error("unknown toggle recorded a completion")
	}
	if got := e.Statistics().TotalCompletions; got != 0 {
		t.Errorf("TotalCompletions = %d, want 0", got)
	}
}

func TestUpdateHabit(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Jog", models.HabitWeekly, HabitOptions{TargetPerWeek: 2})

	name := "Morning jog"
	target := 4
	archived := true
	e.UpdateHabit(h.ID, models.HabitUpdate{Name: &name, TargetPerWeek: &target, Archived: &archived})

	got, ok := e.HabitByID(h.ID)
	if !ok {
		t.Fatal("habit disappeared")
	}
	if got.Name != "Morning jog" || got.TargetPerWeek != 4 || !bool(got.Archived) {
		t.Errorf("update not applied: %+v", got)
	}

	// Unknown ID must be a no-op, not a panic or insert.
	e.UpdateHabit("no-such-id", models.HabitUpdate{Name: &name})
	if len(e.Habits()) != 1 {
		t.Error("unknown update mutated state")
	}
}

func TestReorderHabits(t *testing.T) {
	e := newTestEngine(t)
	a := e.AddHabit("A", models.HabitDaily, HabitOptions{})
	b := e.AddHabit("B", models.HabitDaily, HabitOptions{})
	c := e.AddHabit("C", models.HabitDaily, HabitOptions{})

	e.ReorderHabits([]string{c.ID, a.ID, b.ID})

	got := e.Habits()
	wantNames := []string{"C", "A", "B"}
	for i, want := range wantNames {
		if got[i].Name != want {
			t.Errorf("position %d = %s, want %s", i, got[i].Name, want)
		}
		if got[i].Order != i {
			t.Errorf("order of %s = %d, want %d", got[i].Name, got[i].Order, i)
		}
	}
}

func TestToggleCompletionInvolution(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Read", models.HabitDaily, HabitOptions{})

	e.ToggleCompletion(h.ID, "2024-01-05", 0)
	if !e.IsCompleted(h.ID, "2024-01-05") {
		t.Fatal("first toggle did not complete")
	}
	e.ToggleCompletion(h.ID, "2024-01-05", 0)
	if e.IsCompleted(h.ID, "2024-01-05") {
		t.Error("second toggle did not restore the original state")
	}
}

func TestToggleOffThenOnPreservesStreak(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Read", models.HabitDaily, HabitOptions{})
	for _, d := range []string{"2024-01-03", "2024-01-04", "2024-01-05"} {
		e.ToggleCompletion(h.ID, d, 0)
	}
	if got := e.HabitStreak(h.ID); got != 3 {
		t.Fatalf("streak = %d, want 3", got)
	}
	e.ToggleCompletion(h.ID, "2024-01-05", 0)
	e.ToggleCompletion(h.ID, "2024-01-05", 0)
	if got := e.HabitStreak(h.ID); got != 3 {
		t.Errorf("streak after off/on = %d, want 3", got)
	}
}

func TestCompletionDuration(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Practice", models.HabitTimed, HabitOptions{TargetDuration: 1200})
	e.ToggleCompletion(h.ID, "2024-01-05", 900)

	got, ok := e.CompletionDuration(h.ID, "2024-01-05")
	if !ok || got != 900 {
		t.Errorf("CompletionDuration() = (%d, %v), want (900, true)", got, ok)
	}
	if _, ok := e.CompletionDuration(h.ID, "2024-01-04"); ok {
		t.Error("duration reported for a day with no completion")
	}
}

func TestCelebrationFiresOnceOnFullCompletion(t *testing.T) {
	adapter := storage.NewJSONAdapter(filepath.Join(t.TempDir(), "data"))
	if err := adapter.Init(); err != nil {
		t.Fatalf("failed to init adapter: %v", err)
	}
	trigger := &countingTrigger{}
	e := New(adapter, trigger)
	t.Cleanup(e.Close)
	setToday(e, "2024-01-05")
	if err := e.Load(); err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	settings := e.Settings()
	settings.NotificationsEnabled = true
	settings.CompletionCelebrationEnabled = true
	e.UpdateSettings(settings)

	a := e.AddHabit("A", models.HabitDaily, HabitOptions{})
	b := e.AddHabit("B", models.HabitTimed, HabitOptions{})
	weekly := e.AddHabit("W", models.HabitWeekly, HabitOptions{})

	e.ToggleCompletion(a.ID, "2024-01-05", 0)
	if trigger.count() != 0 {
		t.Fatal("celebrated before all habits were complete")
	}

	// Weekly habits do not gate the celebration set.
	e.ToggleCompletion(b.ID, "2024-01-05", 0)
	if trigger.count() != 1 {
		t.Fatalf("fires = %d, want 1 after the completing toggle", trigger.count())
	}

	// Deletions and unrelated toggles never celebrate.
	e.ToggleCompletion(weekly.ID, "2024-01-05", 0)
	e.ToggleCompletion(a.ID, "2024-01-05", 0)
	if trigger.count() != 1 {
		t.Errorf("fires = %d, want 1 after removal toggle", trigger.count())
	}
}

func TestCelebrationRespectsSettings(t *testing.T) {
	tests := []struct {
		name          string
		notifications bool
		celebration   bool
	}{
		{name: "notifications disabled", notifications: false, celebration: true},
		{name: "celebration disabled", notifications: true, celebration: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := storage.NewJSONAdapter(filepath.Join(t.TempDir(), "data"))
			if err := adapter.Init(); err != nil {
				t.Fatalf("failed to init adapter: %v", err)
			}
			trigger := &countingTrigger{}
			e := New(adapter, trigger)
			t.Cleanup(e.Close)
			setToday(e, "2024-01-05")
			if err := e.Load(); err != nil {
				t.Fatalf("failed to load: %v", err)
			}

			settings := e.Settings()
			settings.NotificationsEnabled = tt.notifications
			settings.CompletionCelebrationEnabled = tt.celebration
			e.UpdateSettings(settings)

			h := e.AddHabit("Only", models.HabitDaily, HabitOptions{})
			e.ToggleCompletion(h.ID, "2024-01-05", 0)
			if trigger.count() != 0 {
				t.Error("celebrated despite disabled settings")
			}
		})
	}
}

func TestArchivedHabitsExcluded(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Old", models.HabitDaily, HabitOptions{})
	e.AddHabit("Current", models.HabitDaily, HabitOptions{})
	e.ToggleCompletion(h.ID, "2024-01-04", 0)

	archived := true
	e.UpdateHabit(h.ID, models.HabitUpdate{Archived: &archived})

	if len(e.ActiveHabits()) != 1 {
		t.Error("archived habit still listed as active")
	}
	if len(e.Habits()) != 2 {
		t.Error("archived habit dropped from the full list")
	}
	// History is retained.
	if !e.IsCompleted(h.ID, "2024-01-04") {
		t.Error("archiving destroyed completion history")
	}
}

func TestDailyReviewUpsert(t *testing.T) {
	e := newTestEngine(t)

	e.AddDailyReview(4, "good day")
	review, ok := e.DailyReviewFor("2024-01-05")
	if !ok || review.Rating != 4 || review.Note != "good day" {
		t.Fatalf("unexpected review: %+v (ok=%v)", review, ok)
	}
	if !e.HasReviewedToday() {
		t.Error("HasReviewedToday() = false after review")
	}

	// Same-day review overwrites.
	e.AddDailyReview(2, "actually rough")
	review, _ = e.DailyReviewFor("2024-01-05")
	if review.Rating != 2 {
		t.Errorf("rating = %d, want 2 after overwrite", review.Rating)
	}

	// Out-of-range ratings change nothing.
	e.AddDailyReview(0, "")
	e.AddDailyReview(6, "")
	review, _ = e.DailyReviewFor("2024-01-05")
	if review.Rating != 2 {
		t.Error("invalid rating overwrote the review")
	}
}

func TestStatePersistsAcrossReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	adapter := storage.NewJSONAdapter(dir)
	if err := adapter.Init(); err != nil {
		t.Fatalf("failed to init adapter: %v", err)
	}

	e := New(adapter, nil)
	setToday(e, "2024-01-05")
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	h := e.AddHabit("Read", models.HabitDaily, HabitOptions{})
	e.ToggleCompletion(h.ID, "2024-01-05", 0)
	e.AddDailyReview(5, "")
	e.Close() // drains the write queue

	e2 := New(adapter, nil)
	t.Cleanup(e2.Close)
	setToday(e2, "2024-01-05")
	if err := e2.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(e2.Habits()) != 1 {
		t.Fatal("habits did not survive reload")
	}
	if !e2.IsCompleted(h.ID, "2024-01-05") {
		t.Error("completion did not survive reload")
	}
	if !e2.HasReviewedToday() {
		t.Error("review did not survive reload")
	}
}
