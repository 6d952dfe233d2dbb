package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/julianstephens/ritual/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	h := e.AddHabit("Read", models.HabitDaily, HabitOptions{})
	e.ToggleCompletion(h.ID, "2024-01-04", 0)
	e.ToggleCompletion(h.ID, "2024-01-05", 0)

	data, err := e.Export()
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	for _, key := range []string{"habits", "completions", "exported_at"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("export missing %q", key)
		}
	}

	fresh := newTestEngine(t)
	if err := fresh.Import(data); err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(fresh.Habits()) != 1 {
		t.Error("habits did not survive the round trip")
	}
	if !fresh.IsCompleted(h.ID, "2024-01-04") || !fresh.IsCompleted(h.ID, "2024-01-05") {
		t.Error("completions did not survive the round trip")
	}
}

func TestImportRejectsIncompleteDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing completions", data: `{"habits": []}`},
		{name: "missing habits", data: `{"completions": []}`},
		{name: "empty object", data: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			existing := e.AddHabit("Keep", models.HabitDaily, HabitOptions{})

			err := e.Import([]byte(tt.data))
			if !errors.Is(err, ErrInvalidImport) {
				t.Fatalf("Import() error = %v, want ErrInvalidImport", err)
			}
			// A rejected import leaves state untouched.
			if _, ok := e.HabitByID(existing.ID); !ok {
				t.Error("rejected import mutated state")
			}
		})
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Import([]byte("{broken")); err == nil {
		t.Error("Import() accepted malformed JSON")
	}
}

func TestImportOverwrites(t *testing.T) {
	source := newTestEngine(t)
	kept := source.AddHabit("Imported", models.HabitDaily, HabitOptions{})
	source.ToggleCompletion(kept.ID, "2024-01-05", 0)
	data, err := source.Export()
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	target := newTestEngine(t)
	target.AddHabit("Replaced", models.HabitDaily, HabitOptions{})
	if err := target.Import(data); err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	habits := target.Habits()
	if len(habits) != 1 || habits[0].Name != "Imported" {
		t.Errorf("import did not overwrite: %+v", habits)
	}
}
