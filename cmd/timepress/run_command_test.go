package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gwlsn/timepress/internal/config"
	"github.com/gwlsn/timepress/internal/ffmpeg"
	"github.com/gwlsn/timepress/internal/state"
)

func TestResolveSettingsFlagOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Codec = "h264"

	settings, _, err := resolveSettings(&cobra.Command{}, cfg, encodeFlags{
		codec:   "h265",
		quality: 20,
		preset:  "slow",
	})
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if settings.Codec != ffmpeg.CodecH265 {
		t.Errorf("codec = %q, want h265", settings.Codec)
	}
	if settings.Quality != 20 {
		t.Errorf("quality = %d, want 20", settings.Quality)
	}
	if settings.Preset != "slow" {
		t.Errorf("preset = %q, want slow", settings.Preset)
	}
	if settings.Hardware {
		t.Error("hardware should stay off unless requested")
	}
}

func TestResolveSettingsDefaultQualityPerCodec(t *testing.T) {
	cfg := config.DefaultConfig()

	settings, _, err := resolveSettings(&cobra.Command{}, cfg, encodeFlags{codec: "h265"})
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if settings.Quality != 28 {
		t.Errorf("h265 default quality = %d, want 28", settings.Quality)
	}
}

func TestResolveSettingsRejectsBadCodec(t *testing.T) {
	cfg := config.DefaultConfig()

	if _, _, err := resolveSettings(&cobra.Command{}, cfg, encodeFlags{codec: "av1"}); err == nil {
		t.Fatal("expected an error for an unsupported codec")
	}
}

func TestMediaFilesFiltersNonMedia(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"clip.mp4", "photo.jpg", "notes.txt", ".hidden.mp4", state.FileName,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "originals"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err := mediaFiles(dir)
	if err != nil {
		t.Fatalf("mediaFiles: %v", err)
	}
	want := []string{"clip.mp4", "photo.jpg"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
