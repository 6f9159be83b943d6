package raw

import "testing"

func TestConf_Get(t *testing.T) {
	t.Setenv("LOG_FORMAT", " json ")

	c := New().Prefix("LOG_")
	if got := c.Get("FORMAT", "console"); got != "json" {
		t.Fatalf("Get = %q, want json", got)
	}
	if got := c.Get("MISSING", "console"); got != "console" {
		t.Fatalf("Get default = %q", got)
	}
}

func TestConf_GetBool(t *testing.T) {
	c := New().Prefix("LOG_")

	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"no", true, false},
		{"0", true, false},
	}
	for _, tc := range cases {
		t.Setenv("LOG_CALLER", tc.val)
		if got := c.GetBool("CALLER", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v", tc.val, tc.def, got)
		}
	}
}

func TestConf_GetInt(t *testing.T) {
	c := New().Prefix("LOG_")

	cases := []struct {
		val  string
		want int
	}{
		{"", 7},
		{"12", 12},
		{" 3 ", 3},
		{"-1", 7},
		{"x9", 7},
	}
	for _, tc := range cases {
		t.Setenv("LOG_SAMPLE_EVERY", tc.val)
		if got := c.GetInt("SAMPLE_EVERY", 7); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
		}
	}
}
