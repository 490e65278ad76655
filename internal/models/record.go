package models

import "time"

// DefaultUserID is used when a request carries no user identifier.
const DefaultUserID = "anonymous"

// Record represents a single question/answer log entry.
// Records are append-only: written once on a successful ask and never
// mutated or deleted by the service.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
}

// RecordKey derives the storage key for a record from its timestamp.
// Nanosecond resolution keeps concurrent asks from colliding on a key.
func RecordKey(t time.Time) string {
	return t.Format("20060102-150405.000000000")
}
