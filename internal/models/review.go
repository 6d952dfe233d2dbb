package models

import "time"

// DailyReview is an end-of-day reflection. At most one review exists per
// date; re-reviewing the same day overwrites the earlier entry.
type DailyReview struct {
	Date        string    `json:"date"`   // YYYY-MM-DD
	Rating      int       `json:"rating"` // 1-5
	Note        string    `json:"note,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
