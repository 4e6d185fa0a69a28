package utils

import (
	"testing"
	"time"
)

func TestIso8601FromTime(t *testing.T) {
	if got := Iso8601FromTime(time.Time{}); got != "" {
		t.Errorf("zero time: expected empty, got %s", got)
	}
	est := time.FixedZone("EST", -5*3600)
	if got := Iso8601FromTime(time.Date(2024, 11, 4, 3, 0, 0, 0, est)); got != "2024-11-04T08:00:00Z" {
		t.Errorf("got %s", got)
	}
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero", 0, "0s"},
		{"seconds only", 45, "45s"},
		{"minutes and seconds", 330, "5m 30s"},
		{"minutes only", 300, "5m"},
		{"hours, minutes, seconds", 3870, "1h 4m 30s"},
		{"hours only", 7200, "2h"},
		{"hours and seconds", 3605, "1h 5s"},
		{"negative", -135, "-2m 15s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := HumanDuration(tt.seconds); result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}
