package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Prober wraps ffmpeg's companion inspection tool. It is queried for one
// thing: the container/stream creation-time tag.
type Prober struct {
	ffprobePath string
}

func NewProber(ffprobePath string) *Prober {
	return &Prober{ffprobePath: ffprobePath}
}

// CreationTime returns the embedded creation instant of a video file.
// Empty or malformed probe output means "no embedded date available" —
// never an error, the candidate is simply absent.
func (p *Prober) CreationTime(ctx context.Context, path string) (time.Time, bool) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "quiet",
		"-select_streams", "v:0",
		"-show_entries", "stream_tags=creation_time:format_tags=creation_time",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return time.Time{}, false
	}

	for _, line := range strings.Split(string(output), "\n") {
		if t, ok := parseCreationTime(strings.TrimSpace(line)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// creationTimeLayouts covers what containers actually carry: ISO-8601
// with or without fractional seconds (a trailing Z parses as a zero
// offset), and the occasional zoneless variant, taken as UTC.
var creationTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

func parseCreationTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range creationTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
