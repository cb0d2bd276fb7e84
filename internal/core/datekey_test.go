package core

import (
	"testing"
	"time"
)

func TestLocalDateKey(t *testing.T) {
	// A zone far behind UTC makes UTC-normalization bugs visible: just after
	// local midnight the UTC date is already the next day.
	zone := time.FixedZone("UTC-8", -8*60*60)
	tests := []struct {
		name string
		t    time.Time
		want DateKey
	}{
		{
			name: "midday",
			t:    time.Date(2024, 3, 1, 12, 30, 0, 0, zone),
			want: "2024-03-01",
		},
		{
			name: "just after local midnight",
			t:    time.Date(2024, 3, 1, 0, 0, 1, 0, zone),
			want: "2024-03-01",
		},
		{
			name: "just before local midnight",
			t:    time.Date(2024, 2, 29, 23, 59, 59, 0, zone),
			want: "2024-02-29",
		},
		{
			name: "single digit month and day are zero padded",
			t:    time.Date(2024, 1, 5, 8, 0, 0, 0, zone),
			want: "2024-01-05",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocalDateKey(tt.t); got != tt.want {
				t.Errorf("LocalDateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateKeyParse(t *testing.T) {
	year, month, day, err := DateKey("2024-03-01").Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != 3 || day != 1 {
		t.Errorf("Parse() = %d-%d-%d, want 2024-3-1", year, month, day)
	}

	bads := []DateKey{"", "2024-3-1", "01/03/2024", "2024-13-01", "2024-03-32", "2024-03-0a"}
	for _, k := range bads {
		if _, _, _, err := k.Parse(); err == nil {
			t.Errorf("Parse(%q) expected error", k)
		}
	}
}

func TestDateKeyDisplay(t *testing.T) {
	if got := DateKey("2024-03-01").Display(); got != "01/03/2024" {
		t.Errorf("Display() = %q, want %q", got, "01/03/2024")
	}
}

func TestDisplayRoundTripAtMidnightBoundary(t *testing.T) {
	// formatForDisplay(localDateKey(instant)) must reproduce the local
	// calendar day even one second after local midnight.
	zone := time.FixedZone("UTC-3", -3*60*60)
	instant := time.Date(2024, 7, 15, 0, 0, 1, 0, zone)
	if got := LocalDateKey(instant).Display(); got != "15/07/2024" {
		t.Errorf("round trip = %q, want %q", got, "15/07/2024")
	}
}

func TestDateKeyLocalDate(t *testing.T) {
	d, err := DateKey("2024-03-01").LocalDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 1 {
		t.Errorf("LocalDate() = %v, want 2024-03-01", d)
	}
	if d.Location() != time.Local {
		t.Errorf("LocalDate() location = %v, want Local", d.Location())
	}
	if h, m, s := d.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("LocalDate() clock = %d:%d:%d, want midnight", h, m, s)
	}
}

func TestDateKeyLexicographicOrderIsChronological(t *testing.T) {
	if !(DateKey("2024-02-29") < DateKey("2024-03-01")) {
		t.Error("expected 2024-02-29 < 2024-03-01")
	}
	if !(DateKey("2023-12-31") < DateKey("2024-01-01")) {
		t.Error("expected 2023-12-31 < 2024-01-01")
	}
}
