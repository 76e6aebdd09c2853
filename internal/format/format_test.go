package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1995-12-15", "15/12/1995"},
		{"", "Date unavailable"},
		{"not-a-date", "Date unavailable"},
	}
	for _, tc := range cases {
		if got := Date(tc.in); got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDateTime(t *testing.T) {
	if got := DateTime(nil); got != "Time not set" {
		t.Errorf("DateTime(nil) = %q", got)
	}
	at := time.Date(2026, 1, 2, 20, 30, 0, 0, time.Local)
	if got := DateTime(&at); got != "02/01/2026 20:30" {
		t.Errorf("DateTime = %q", got)
	}
}

func TestOverview(t *testing.T) {
	if got := Overview("  a synopsis  "); got != "a synopsis" {
		t.Errorf("Overview = %q", got)
	}
	if got := Overview("   "); got != "No synopsis available." {
		t.Errorf("Overview fallback = %q", got)
	}
}
