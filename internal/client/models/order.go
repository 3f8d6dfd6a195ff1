package models

import "time"

// Order is one submitted order form. Values are keyed by the configured form
// field names.
type Order struct {
	ID          string
	Login       string
	Values      map[string]string
	CreatedAt   time.Time
	DocumentRef string
}
