package ffmpeg

import (
	"regexp"
	"strconv"
	"time"
)

// Progress holds the metrics extracted so far from ffmpeg's diagnostic
// stream. All fields are opportunistic: an ffmpeg build that prints no
// markers only reduces granularity, never fails an encode.
type Progress struct {
	Duration time.Duration // total input duration, from the "Duration:" banner
	Position time.Duration // current position, from "time=" stats lines
	Frame    int64
	FPS      float64
	Speed    float64 // encoding speed multiplier (1.0 = realtime)
	Percent  float64 // 0-100, only when Duration is known
}

// ProgressParser extracts live metrics from ffmpeg stderr lines. ffmpeg
// overwrites its stats line with \r, so callers must split on both \r
// and \n before handing lines over.
type ProgressParser struct {
	durationRe *regexp.Regexp
	timeRe     *regexp.Regexp
	frameRe    *regexp.Regexp
	fpsRe      *regexp.Regexp
	speedRe    *regexp.Regexp

	cur Progress
}

func NewProgressParser() *ProgressParser {
	return &ProgressParser{
		durationRe: regexp.MustCompile(`Duration:\s*(\d+):(\d+):([0-9.]+)`),
		timeRe:     regexp.MustCompile(`\btime=\s*(\d+):(\d+):([0-9.]+)`),
		frameRe:    regexp.MustCompile(`^frame=\s*(\d+)`),
		fpsRe:      regexp.MustCompile(`\bfps=\s*([0-9.]+)`),
		speedRe:    regexp.MustCompile(`\bspeed=\s*([0-9.]+)x`),
	}
}

// ParseLine folds one diagnostic line into the running progress state.
// It returns the updated snapshot and whether the line carried any
// recognized marker.
func (p *ProgressParser) ParseLine(line string) (Progress, bool) {
	updated := false

	if m := p.durationRe.FindStringSubmatch(line); m != nil {
		if d, ok := clockToDuration(m[1], m[2], m[3]); ok {
			p.cur.Duration = d
			updated = true
		}
	}
	if m := p.timeRe.FindStringSubmatch(line); m != nil {
		if d, ok := clockToDuration(m[1], m[2], m[3]); ok {
			p.cur.Position = d
			updated = true
		}
	}
	if m := p.frameRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			p.cur.Frame = n
			updated = true
		}
	}
	if m := p.fpsRe.FindStringSubmatch(line); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.cur.FPS = f
			updated = true
		}
	}
	if m := p.speedRe.FindStringSubmatch(line); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.cur.Speed = f
			updated = true
		}
	}

	if p.cur.Duration > 0 && p.cur.Position > 0 {
		p.cur.Percent = float64(p.cur.Position) / float64(p.cur.Duration) * 100
		if p.cur.Percent > 100 {
			p.cur.Percent = 100
		}
	}

	return p.cur, updated
}

// clockToDuration converts an HH:MM:SS.cc clock reading to a duration.
func clockToDuration(h, m, s string) (time.Duration, bool) {
	hours, err1 := strconv.Atoi(h)
	minutes, err2 := strconv.Atoi(m)
	seconds, err3 := strconv.ParseFloat(s, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	total := float64(hours*3600+minutes*60) + seconds
	return time.Duration(total * float64(time.Second)), true
}
