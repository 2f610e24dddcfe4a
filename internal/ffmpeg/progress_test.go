package ffmpeg

import (
	"math"
	"testing"
	"time"
)

func TestParseLineDurationBanner(t *testing.T) {
	p := NewProgressParser()
	got, ok := p.ParseLine("  Duration: 00:05:20.45, start: 0.000000, bitrate: 4385 kb/s")
	if !ok {
		t.Fatal("duration banner should be recognized")
	}
	want := time.Duration(320.45 * float64(time.Second))
	if got.Duration != want {
		t.Errorf("Duration = %v, want %v", got.Duration, want)
	}
}

func TestParseLineStatsLine(t *testing.T) {
	p := NewProgressParser()
	p.ParseLine("  Duration: 00:01:40.00, start: 0.000000")

	got, ok := p.ParseLine("frame=  480 fps= 48 q=28.0 size=    2048kB time=00:00:50.00 bitrate= 335.5kbits/s speed=2.5x")
	if !ok {
		t.Fatal("stats line should be recognized")
	}
	if got.Frame != 480 {
		t.Errorf("Frame = %d, want 480", got.Frame)
	}
	if got.FPS != 48 {
		t.Errorf("FPS = %v, want 48", got.FPS)
	}
	if got.Speed != 2.5 {
		t.Errorf("Speed = %v, want 2.5", got.Speed)
	}
	if got.Position != 50*time.Second {
		t.Errorf("Position = %v, want 50s", got.Position)
	}
	if math.Abs(got.Percent-50) > 0.01 {
		t.Errorf("Percent = %v, want 50", got.Percent)
	}
}

func TestParseLineUnrecognizedIsNotAnError(t *testing.T) {
	p := NewProgressParser()
	if _, ok := p.ParseLine("Press [q] to stop, [?] for help"); ok {
		t.Error("banner noise should not count as a progress update")
	}
}

func TestParseLinePercentClamped(t *testing.T) {
	p := NewProgressParser()
	p.ParseLine("  Duration: 00:00:10.00, start: 0")
	got, _ := p.ParseLine("frame=  999 fps=30 time=00:00:12.00 speed=1.0x")
	if got.Percent != 100 {
		t.Errorf("Percent = %v, want clamped 100", got.Percent)
	}
}

func TestScanDiagnosticLinesSplitsOnCarriageReturn(t *testing.T) {
	data := []byte("frame=1 time=00:00:01.00\rframe=2 time=00:00:02.00\nDone\n")
	var lines []string
	for len(data) > 0 {
		adv, token, err := scanDiagnosticLines(data, true)
		if err != nil {
			t.Fatal(err)
		}
		if adv == 0 {
			break
		}
		lines = append(lines, string(token))
		data = data[adv:]
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[1] != "frame=2 time=00:00:02.00" {
		t.Errorf("second line = %q", lines[1])
	}
}
