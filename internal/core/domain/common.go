package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"` // UserID Reference
	LastUpdatedAt time.Time `json:"last_updated_at"`
	LastUpdatedBy string    `json:"last_updated_by"` // UserID Reference
	Version       int64     `json:"version"`
}

// Actor is the authenticated staff user on whose behalf a write happens.
// Services receive it explicitly instead of reading request globals.
type Actor struct {
	UserID string `json:"user_id"`
}

// Today truncates t to the calendar date in UTC.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
