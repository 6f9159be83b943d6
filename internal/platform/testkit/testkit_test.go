package testkit

import (
	"strings"
	"testing"
)

var seam = func() string { return "real" }

func TestSwap_Restores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatal("swap did not take effect")
		}
	})
	if seam() != "real" {
		t.Fatal("swap not restored")
	}
}

func TestMustPanicAndContain(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() { panic("boom") })
	MustContain(t, "usage stats", "stats")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	v := DecodeJSON[map[string]int](t, strings.NewReader(`{"n":3}`))
	if v["n"] != 3 {
		t.Fatalf("got %v", v)
	}
}
