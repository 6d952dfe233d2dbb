package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/ritual/internal/models"
)

// adapters returns one of each Adapter implementation rooted in a fresh temp
// location, so every contract test runs against both backends.
func adapters(t *testing.T) map[string]Adapter {
	t.Helper()

	jsonDir := filepath.Join(t.TempDir(), "data")
	jsonAdapter := NewJSONAdapter(jsonDir)
	if err := jsonAdapter.Init(); err != nil {
		t.Fatalf("failed to init JSON adapter: %v", err)
	}

	sqlitePath := filepath.Join(t.TempDir(), "ritual.db")
	sqliteAdapter := NewSQLiteAdapter(sqlitePath)
	if err := sqliteAdapter.Init(); err != nil {
		t.Fatalf("failed to init SQLite adapter: %v", err)
	}
	t.Cleanup(func() { sqliteAdapter.Close() })

	return map[string]Adapter{
		"json":   jsonAdapter,
		"sqlite": sqliteAdapter,
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			habits := []models.Habit{
				{ID: "h1", Name: "Meditate", Type: models.HabitTimed, TargetDuration: 1800},
				{ID: "h2", Name: "Read", Type: models.HabitDaily, Order: 1},
			}
			if err := adapter.Save(KeyHabits, habits); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			var loaded []models.Habit
			found, err := adapter.Load(KeyHabits, &loaded)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !found {
				t.Fatal("Load() found = false after Save")
			}
			if len(loaded) != 2 || loaded[0].ID != "h1" || loaded[1].Name != "Read" {
				t.Errorf("unexpected loaded habits: %+v", loaded)
			}
		})
	}
}

func TestLoadMissingKey(t *testing.T) {
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			var completions []models.CompletionRecord
			found, err := adapter.Load(KeyCompletions, &completions)
			if err != nil {
				t.Fatalf("Load() of missing key errored: %v", err)
			}
			if found {
				t.Error("Load() found = true for missing key")
			}
			if len(completions) != 0 {
				t.Errorf("expected empty default, got %+v", completions)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			if err := adapter.Save(KeySettings, models.UserSettings{MorningReminderTime: "07:00"}); err != nil {
				t.Fatalf("first Save() error: %v", err)
			}
			if err := adapter.Save(KeySettings, models.UserSettings{MorningReminderTime: "09:30"}); err != nil {
				t.Fatalf("second Save() error: %v", err)
			}

			var settings models.UserSettings
			if _, err := adapter.Load(KeySettings, &settings); err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if settings.MorningReminderTime != "09:30" {
				t.Errorf("last write did not win: %q", settings.MorningReminderTime)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, adapter := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			if err := adapter.Save(KeyTimerState, models.TimerState{HabitID: "h1"}); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if err := adapter.Delete(KeyTimerState); err != nil {
				t.Fatalf("Delete() error: %v", err)
			}

			var state models.TimerState
			found, err := adapter.Load(KeyTimerState, &state)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if found {
				t.Error("key still present after Delete")
			}

			// Deleting again must not error.
			if err := adapter.Delete(KeyTimerState); err != nil {
				t.Errorf("Delete() of missing key errored: %v", err)
			}
		})
	}
}

func TestMalformedDataFallsBackToDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	adapter := NewJSONAdapter(dir)
	if err := adapter.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, KeyHabits+".json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to plant malformed file: %v", err)
	}

	var habits []models.Habit
	found, err := adapter.Load(KeyHabits, &habits)
	if err != nil {
		t.Fatalf("Load() of malformed data errored: %v", err)
	}
	if found {
		t.Error("Load() found = true for malformed data")
	}
}

func TestArchivedStringCoercion(t *testing.T) {
	// An earlier schema version persisted archived as the strings
	// "true"/"false"; those blobs must still decode to real booleans.
	dir := filepath.Join(t.TempDir(), "data")
	adapter := NewJSONAdapter(dir)
	if err := adapter.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	legacy := `[
		{"id": "h1", "name": "Stretch", "type": "daily", "archived": "true"},
		{"id": "h2", "name": "Read", "type": "daily", "archived": "false"},
		{"id": "h3", "name": "Write", "type": "daily", "archived": true}
	]`
	if err := os.WriteFile(filepath.Join(dir, KeyHabits+".json"), []byte(legacy), 0600); err != nil {
		t.Fatalf("failed to plant legacy file: %v", err)
	}

	var habits []models.Habit
	found, err := adapter.Load(KeyHabits, &habits)
	if err != nil || !found {
		t.Fatalf("Load() = (%v, %v), want (true, nil)", found, err)
	}
	if !bool(habits[0].Archived) {
		t.Error(`archived "true" did not coerce to true`)
	}
	if bool(habits[1].Archived) {
		t.Error(`archived "false" did not coerce to false`)
	}
	if !bool(habits[2].Archived) {
		t.Error("plain boolean archived was mangled")
	}
}
