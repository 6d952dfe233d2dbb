package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
)

// ErrInvalidImport is returned when an import document is missing either the
// habits or the completions array.
var ErrInvalidImport = errors.New("import document must contain habits and completions arrays")

type exportDocument struct {
	ExportedAt  time.Time                 `json:"exported_at"`
	Habits      []models.Habit            `json:"habits"`
	Completions []models.CompletionRecord `json:"completions"`
}

// Export serializes the habit list and completion ledger to a single JSON
// document stamped with the export time.
func (e *Engine) Export() ([]byte, error) {
	e.mu.Lock()
	doc := exportDocument{
		ExportedAt:  e.now(),
		Habits:      cloneSlice(e.habits),
		Completions: cloneSlice(e.completions),
	}
	e.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// Import replaces the habit list and completion ledger with the contents of
// an export document. Both arrays must be present or the import is rejected
// and no state changes.
func (e *Engine) Import(data []byte) error {
	var doc struct {
		Habits      *[]models.Habit            `json:"habits"`
		Completions *[]models.CompletionRecord `json:"completions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse import document: %w", err)
	}
	if doc.Habits == nil || doc.Completions == nil {
		return ErrInvalidImport
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.habits = *doc.Habits
	e.completions = *doc.Completions
	e.persistHabits()
	e.persistCompletions()
	return nil
}
