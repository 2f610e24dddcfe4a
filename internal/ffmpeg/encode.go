package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gwlsn/timepress/internal/logger"
)

// stderrTailLines is how many diagnostic lines are kept for error
// reporting when ffmpeg exits non-zero.
const stderrTailLines = 10

// ProgressLineFunc receives each diagnostic line while the encoder is
// still running, enabling live progress display without buffering the
// whole stream.
type ProgressLineFunc func(line string)

// EncodeError is an encoder failure with the diagnostic tail attached.
type EncodeError struct {
	Err  error
	Tail string // last stderr lines before exit
}

func (e *EncodeError) Error() string {
	if e.Tail != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Tail)
	}
	return e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Encoder invokes ffmpeg as a child process, one file at a time.
type Encoder struct {
	ffmpegPath string
}

func NewEncoder(ffmpegPath string) *Encoder {
	return &Encoder{ffmpegPath: ffmpegPath}
}

// Encode transcodes inputPath to outputPath with the given settings.
// The child's stderr is drained line by line concurrently with the wait
// for exit — ffmpeg writes enough diagnostics that a sequential
// read-then-wait would stall the child on a full pipe. Each line is
// handed to onLine (if non-nil) as it arrives. A partial output file
// is removed on failure. Retry policy belongs to the caller.
func (e *Encoder) Encode(ctx context.Context, inputPath, outputPath string, s Settings, onLine ProgressLineFunc) error {
	args := BuildArgs(inputPath, outputPath, s)
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	logger.Debug("ffmpeg command", "args", strings.Join(args, " "))

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var tail []string
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanDiagnosticLines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			if onLine != nil {
				onLine(line)
			}
			tail = append(tail, line)
			if len(tail) > stderrTailLines {
				tail = tail[1:]
			}
		}
	}()

	<-drained
	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		return &EncodeError{
			Err:  fmt.Errorf("ffmpeg failed: %w", err),
			Tail: strings.Join(tail, " | "),
		}
	}
	return nil
}

// scanDiagnosticLines splits on \n or \r: ffmpeg overwrites its live
// stats line with carriage returns, and each overwrite is a line to us.
func scanDiagnosticLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
