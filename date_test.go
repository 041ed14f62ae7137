package alpha

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2026-08-31", NewDate(2026, time.August, 31), true},
		{"2026-8-3", NewDate(2026, time.August, 3), true}, // permissive on read
		{"31/08/2026", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.ok && (err != nil || got != tc.want) {
				t.Errorf("ParseDate(%q) = %v, %v", tc.in, got, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("ParseDate(%q) accepted", tc.in)
			}
		})
	}
}

func TestDate_String(t *testing.T) {
	// Always the padded ISO form on write.
	if got := NewDate(2026, time.August, 3).String(); got != "2026-08-03" {
		t.Errorf("String() = %q, want 2026-08-03", got)
	}
}

func TestDate_AddMonthNormalizes(t *testing.T) {
	// Month arithmetic rolls over year boundaries.
	d := NewDate(2026, time.January, 15).AddMonth(-2)
	if d != NewDate(2025, time.November, 15) {
		t.Errorf("AddMonth(-2) = %s", d)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.August, 31)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2026-08-31"` {
		t.Errorf("marshaled = %s", data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}
