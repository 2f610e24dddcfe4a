package pipeline

import (
	"time"

	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/state"
)

// Outcome is the terminal result for one file.
type Outcome struct {
	Name       string
	OutputName string
	Status     state.Status
	Err        error
	InputSize  int64
	OutputSize int64
}

// Summary aggregates one batch run.
type Summary struct {
	Candidates int // files considered after the done-skip
	Done       int
	Skipped    int // skipped_exists
	Failed     int // any failed_* or error status
	BytesIn    int64
	BytesOut   int64
	Elapsed    time.Duration
}

// Reporter receives pipeline checkpoints. The pipeline itself never
// performs interactive I/O; presentation belongs entirely to the
// caller.
type Reporter interface {
	FileStart(name string, index, total int)
	FileProgress(name string, p ffmpeg.Progress)
	FileDone(o Outcome)
	BatchDone(s Summary)
}

// NopReporter discards all checkpoints.
type NopReporter struct{}

func (NopReporter) FileStart(string, int, int)           {}
func (NopReporter) FileProgress(string, ffmpeg.Progress) {}
func (NopReporter) FileDone(Outcome)                     {}
func (NopReporter) BatchDone(Summary)                    {}
