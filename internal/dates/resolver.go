// Package dates reconciles a file's filesystem timestamps and embedded
// content metadata into one authoritative earliest instant, and writes
// that instant back onto transformed files.
package dates

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gwlsn/timepress/internal/platform"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".tiff": true, ".heic": true, ".webp": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".m4v": true, ".webm": true,
}

// IsImage reports whether name has a recognized raster image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsVideo reports whether name has a recognized video extension.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// TimestampSet holds the instants observed for one file. FSCreated and
// FSModified are always present; Embedded is only set when content
// metadata yielded a parseable date.
type TimestampSet struct {
	FSCreated   time.Time // birth time where the platform exposes one, else metadata-change time
	FSModified  time.Time
	Embedded    time.Time
	HasEmbedded bool
}

// Earliest returns the minimum over all obtained candidates. FSModified
// is always a candidate, so the result is never later than it.
func (ts TimestampSet) Earliest() time.Time {
	earliest := ts.FSModified
	if !ts.FSCreated.IsZero() && ts.FSCreated.Before(earliest) {
		earliest = ts.FSCreated
	}
	if ts.HasEmbedded && ts.Embedded.Before(earliest) {
		earliest = ts.Embedded
	}
	return earliest
}

// EmbeddedProber extracts a container-level creation instant from a
// video file. *ffmpeg.Prober satisfies it.
type EmbeddedProber interface {
	CreationTime(ctx context.Context, path string) (time.Time, bool)
}

// Resolver produces TimestampSets. A nil prober disables the video
// candidate, which only narrows the candidate set.
type Resolver struct {
	prober EmbeddedProber
}

func NewResolver(prober EmbeddedProber) *Resolver {
	return &Resolver{prober: prober}
}

// Resolve inspects path and returns its TimestampSet. The filesystem
// timestamps are mandatory — a stat failure is the only error. Embedded
// candidates are attempted only for recognized image and video
// extensions, and any extraction failure just omits the candidate.
func (r *Resolver) Resolve(ctx context.Context, path string) (TimestampSet, error) {
	created, modified, err := platform.FileTimes(path)
	if err != nil {
		return TimestampSet{}, err
	}

	ts := TimestampSet{FSCreated: created, FSModified: modified}

	switch {
	case IsImage(path):
		if t, ok := exifTime(path); ok {
			ts.Embedded = t
			ts.HasEmbedded = true
		}
	case IsVideo(path) && r.prober != nil:
		if t, ok := r.prober.CreationTime(ctx, path); ok {
			ts.Embedded = t
			ts.HasEmbedded = true
		}
	}

	return ts, nil
}
