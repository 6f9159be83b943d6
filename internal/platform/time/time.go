// Package time holds small helpers for timestamps crossing the wire
package time

import "time"

// UTCPtr returns t in UTC behind a pointer, the zero time becomes nil so it drops from JSON
func UTCPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
