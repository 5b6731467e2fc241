package timeformat

import "testing"

func TestTo12Hour(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"14:30:00", "2:30 PM"},
		{"00:15", "12:15 AM"},
		{"12:00:00", "12:00 PM"},
		{"09:05", "9:05 AM"},
		{"23:59:59", "11:59 PM"},
		{"2:30 PM", "2:30 PM"},  // already formatted
		{"10:00 am", "10:00 am"}, // marker passes through untouched
		{"", ""},
		{"noon", "noon"}, // unparseable passes through
		{"25:00", "25:00"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := To12Hour(tt.input); got != tt.want {
				t.Errorf("To12Hour(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	if got := Range("14:00:00", "16:00:00"); got != "2:00 PM to 4:00 PM" {
		t.Errorf("Range = %q", got)
	}
	if got := Range("14:00:00", ""); got != "2:00 PM" {
		t.Errorf("Range start only = %q", got)
	}
	if got := Range("", ""); got != "" {
		t.Errorf("Range empty = %q", got)
	}
}
