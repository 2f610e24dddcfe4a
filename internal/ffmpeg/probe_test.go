package ffmpeg

import (
	"testing"
	"time"
)

func TestParseCreationTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2023-01-01T12:00:00.000000Z", time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), true},
		{"2021-06-01T10:00:00Z", time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC), true},
		{"2021-06-01T10:00:00+02:00", time.Date(2021, 6, 1, 10, 0, 0, 0, time.FixedZone("", 7200)), true},
		{"2021-06-01 10:00:00", time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseCreationTime(tt.in)
		if ok != tt.ok {
			t.Errorf("parseCreationTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parseCreationTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHardwareAvailableRequiresEncoder(t *testing.T) {
	encoders := map[string]bool{"libx265": true}
	if HardwareAvailable(encoders, CodecH265) {
		t.Error("hardware must not be reported available without the encoder present")
	}
}
