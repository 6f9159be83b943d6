package time

import (
	"testing"
	"time"
)

func TestUTCPtr(t *testing.T) {
	t.Parallel()

	if UTCPtr(time.Time{}) != nil {
		t.Fatal("zero time should be nil")
	}
	at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	p := UTCPtr(at)
	if p == nil || !p.Equal(at) || p.Location() != time.UTC {
		t.Fatalf("got %v", p)
	}
}
