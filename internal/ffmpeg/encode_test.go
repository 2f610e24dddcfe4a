package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeStubEncoder writes a shell script standing in for ffmpeg. The
// script picks its last argument as the output path, like ffmpeg does.
func writeStubEncoder(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub encoder scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	script := "#!/bin/sh\nfor a; do out=$a; done\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeStreamsDiagnosticLines(t *testing.T) {
	stub := writeStubEncoder(t,
		`printf 'Duration: 00:00:10.00\n' >&2; printf 'frame=1 time=00:00:05.00 speed=1.0x\r' >&2; : > "$out"`)

	out := filepath.Join(t.TempDir(), "out.mp4")
	var lines []string
	err := NewEncoder(stub).Encode(context.Background(), "in.mp4", out, Settings{Codec: CodecH264, Quality: 23, Preset: "fast"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Duration: 00:00:10.00") {
		t.Errorf("duration line not streamed: %q", lines)
	}
	if !strings.Contains(joined, "frame=1") {
		t.Errorf("carriage-return stats line not streamed: %q", lines)
	}
	if _, statErr := os.Stat(out); statErr != nil {
		t.Errorf("output should survive a successful encode: %v", statErr)
	}
}

func TestEncodeFailureRemovesPartialOutputAndCarriesTail(t *testing.T) {
	stub := writeStubEncoder(t,
		`: > "$out"; printf 'in.mp4: Invalid data found when processing input\n' >&2; exit 1`)

	out := filepath.Join(t.TempDir(), "out.mp4")
	err := NewEncoder(stub).Encode(context.Background(), "in.mp4", out, Settings{Codec: CodecH264, Quality: 23, Preset: "fast"}, nil)
	if err == nil {
		t.Fatal("expected failure for non-zero exit")
	}

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodeError, got %T", err)
	}
	if !strings.Contains(encErr.Tail, "Invalid data") {
		t.Errorf("stderr tail not captured: %q", encErr.Tail)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("partial output must be removed on failure")
	}
}
