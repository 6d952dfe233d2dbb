// Package storage provides the durable key-value blob store the engine
// persists its collections through. Each collection lives under a single
// logical key and is serialized as one JSON document.
package storage

// Storage keys, one per collection.
const (
	KeyHabits        = "habits"
	KeyCompletions   = "completions"
	KeyTimedProgress = "timed_progress"
	KeyTimerState    = "timer_state"
	KeyDailyReviews  = "daily_reviews"
	KeySettings      = "settings"
)

// Adapter is the durable storage contract. Implementations must tolerate
// missing keys (first run) and malformed stored data: Load reports found =
// false for both cases and never fails the caller for them.
type Adapter interface {
	// Init prepares the storage location for first use.
	Init() error

	// Load decodes the value stored under key into into. found is false if
	// the key does not exist or holds data that cannot be decoded.
	Load(key string, into any) (found bool, err error)

	// Save serializes value and durably stores it under key, replacing any
	// previous value.
	Save(key string, value any) error

	// Delete removes the value stored under key. Deleting a missing key is
	// not an error.
	Delete(key string) error

	// Close releases any resources held by the adapter.
	Close() error

	// DataPath returns the filesystem location backing this adapter.
	DataPath() string
}
