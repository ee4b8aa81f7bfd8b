package utils

import (
	"regexp"
	"testing"
)

func TestGenerateOrderID(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^BOOK-\d{8}-\d{6}-\d{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id := GenerateOrderID()
		if !pattern.MatchString(id) {
			t.Fatalf("order ID %q does not match BOOK-YYYYMMDD-HHMMSS-RANDOM", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected varying order IDs, got %d distinct of 10", len(seen))
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:30", 570, false},
		{"25:00", 0, true},
		{"nope", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
