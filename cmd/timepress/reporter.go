package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/pipeline"
	"github.com/gwlsn/timepress/internal/state"
)

// consoleReporter prints per-file progress to stdout. On a terminal it
// rewrites a single progress line with \r; otherwise it stays quiet
// between file boundaries so logs are not flooded.
type consoleReporter struct {
	tty      bool
	progress bool
}

func newConsoleReporter() *consoleReporter {
	return &consoleReporter{tty: isatty.IsTerminal(os.Stdout.Fd())}
}

func (r *consoleReporter) FileStart(name string, index, total int) {
	fmt.Printf("[%d/%d] %s\n", index, total, name)
}

func (r *consoleReporter) FileProgress(name string, p ffmpeg.Progress) {
	if !r.tty {
		return
	}
	line := fmt.Sprintf("  %5.1f%%  %s", p.Percent, p.Position.Truncate(1e9))
	if p.Speed > 0 {
		line += fmt.Sprintf("  %.2gx", p.Speed)
	}
	fmt.Printf("\r%-50s", line)
	r.progress = true
}

func (r *consoleReporter) FileDone(o pipeline.Outcome) {
	r.clearProgress()
	switch o.Status {
	case state.StatusDone:
		saved := ""
		if o.InputSize > 0 && o.OutputSize > 0 {
			saved = fmt.Sprintf(" (%s -> %s)",
				humanize.IBytes(uint64(o.InputSize)), humanize.IBytes(uint64(o.OutputSize)))
		}
		fmt.Printf("  done: %s%s\n", o.OutputName, saved)
	case state.StatusSkippedExists:
		fmt.Printf("  skipped: %s already exists\n", o.OutputName)
	default:
		fmt.Printf("  %s: %v\n", strings.ReplaceAll(string(o.Status), "_", " "), o.Err)
	}
}

func (r *consoleReporter) BatchDone(s pipeline.Summary) {
	fmt.Printf("\n%d candidates: %d done, %d skipped, %d failed in %s\n",
		s.Candidates, s.Done, s.Skipped, s.Failed, s.Elapsed.Truncate(1e9))
	if s.BytesIn > 0 && s.BytesOut > 0 {
		fmt.Printf("%s in, %s out\n",
			humanize.IBytes(uint64(s.BytesIn)), humanize.IBytes(uint64(s.BytesOut)))
	}
}

func (r *consoleReporter) clearProgress() {
	if r.progress {
		fmt.Printf("\r%-50s\r", "")
		r.progress = false
	}
}
