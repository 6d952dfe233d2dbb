// Package phrases supplies the motivational lines shown at the top of the
// today view. A phrase set is a short stack of lines displayed together.
package phrases

import (
	"hash/fnv"

	"github.com/julianstephens/ritual/internal/models"
)

// Builtin is the stock collection of phrase sets.
var Builtin = [][]string{
	{"No zero days.", "Show up, even badly."},
	{"Discipline is remembering", "what you want."},
	{"The streak is the reward."},
	{"Small daily wins", "compound quietly."},
	{"You don't rise to goals.", "You fall to systems."},
	{"Done beats perfect."},
}

// Select returns the phrase set for the given day. A selected index pins one
// set; otherwise the set rotates deterministically by date so it stays stable
// within a day but changes across days. Custom phrase sets, when present,
// extend the pool and are addressable by index after the builtins.
func Select(settings models.UserSettings, date string) []string {
	pool := Builtin
	if len(settings.CustomPhrases) > 0 {
		pool = append(append([][]string{}, Builtin...), settings.CustomPhrases...)
	}
	if len(pool) == 0 {
		return nil
	}

	if idx := settings.SelectedPhraseIndex; idx != nil && *idx >= 0 && *idx < len(pool) {
		return pool[*idx]
	}

	h := fnv.New32a()
	h.Write([]byte(date))
	return pool[h.Sum32()%uint32(len(pool))]
}
