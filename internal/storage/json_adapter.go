package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/ritual/internal/logger"
)

// JSONAdapter stores each key as a pretty-printed JSON file in a single
// directory.
type JSONAdapter struct {
	dir string
}

func NewJSONAdapter(dir string) *JSONAdapter {
	return &JSONAdapter{dir: dir}
}

func (a *JSONAdapter) Init() error {
	if err := os.MkdirAll(a.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (a *JSONAdapter) Load(key string, into any) (bool, error) {
	data, err := os.ReadFile(a.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		// Malformed stored data degrades to the caller's default rather than
		// blocking startup.
		logger.Warn("Discarding malformed stored data", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (a *JSONAdapter) Save(key string, value any) error {
	if err := os.MkdirAll(a.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	if err := os.WriteFile(a.filePath(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (a *JSONAdapter) Delete(key string) error {
	if err := os.Remove(a.filePath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (a *JSONAdapter) Close() error {
	return nil
}

func (a *JSONAdapter) DataPath() string {
	return a.dir
}

func (a *JSONAdapter) filePath(key string) string {
	return filepath.Join(a.dir, key+".json")
}
