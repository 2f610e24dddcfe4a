package ffmpeg

import (
	"slices"
	"strings"
	"testing"
)

func TestEncoderName(t *testing.T) {
	tests := []struct {
		codec    Codec
		hardware bool
		want     string
	}{
		{CodecH264, false, "libx264"},
		{CodecH265, false, "libx265"},
		{CodecH264, true, "h264_videotoolbox"},
		{CodecH265, true, "hevc_videotoolbox"},
	}
	for _, tt := range tests {
		s := Settings{Codec: tt.codec, Hardware: tt.hardware}
		if got := s.EncoderName(); got != tt.want {
			t.Errorf("EncoderName(%s, hw=%v) = %q, want %q", tt.codec, tt.hardware, got, tt.want)
		}
	}
}

func TestVideoToolboxQuality(t *testing.T) {
	tests := []struct {
		crf  int
		want int
	}{
		{28, 58}, // round(100 - 42)
		{23, 66}, // round(100 - 34.5) = round(65.5)
		{18, 73},
		{0, 100},  // clamped at top
		{51, 24},
		{70, 1}, // clamped at bottom
	}
	for _, tt := range tests {
		if got := VideoToolboxQuality(tt.crf); got != tt.want {
			t.Errorf("VideoToolboxQuality(%d) = %d, want %d", tt.crf, got, tt.want)
		}
	}
}

func TestBuildArgsSoftwareH265(t *testing.T) {
	args := BuildArgs("in.mov", "out.mp4", Settings{
		Codec:   CodecH265,
		Quality: 28,
		Preset:  "medium",
	})

	wantPairs := [][2]string{
		{"-c:v", "libx265"},
		{"-crf", "28"},
		{"-preset", "medium"},
		{"-vtag", "hvc1"},
		{"-map_metadata", "0"},
		{"-pix_fmt", "yuv420p"},
		{"-c:a", "copy"},
		{"-movflags", "+faststart+use_metadata_tags"},
	}
	for _, pair := range wantPairs {
		i := slices.Index(args, pair[0])
		if i < 0 || i+1 >= len(args) || args[i+1] != pair[1] {
			t.Errorf("args missing %q %q: %v", pair[0], pair[1], args)
		}
	}
	if !slices.Contains(args, "-y") {
		t.Error("must overwrite destination without prompting")
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output path must be last, got %q", args[len(args)-1])
	}
}

func TestBuildArgsHardwareOmitsPresetAndRemapsQuality(t *testing.T) {
	args := BuildArgs("in.mov", "out.mp4", Settings{
		Codec:    CodecH265,
		Quality:  28,
		Preset:   "medium",
		Hardware: true,
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v hevc_videotoolbox") {
		t.Errorf("expected hardware encoder: %v", args)
	}
	if !strings.Contains(joined, "-q:v 58") {
		t.Errorf("expected remapped quality 58: %v", args)
	}
	if strings.Contains(joined, "-preset") {
		t.Errorf("preset is meaningless on the hardware path: %v", args)
	}
	if strings.Contains(joined, "-crf") {
		t.Errorf("hardware path must not pass crf: %v", args)
	}
	if !strings.Contains(joined, "-vtag hvc1") {
		t.Errorf("compatibility tag missing: %v", args)
	}
}

func TestBuildArgsH264NoTag(t *testing.T) {
	args := BuildArgs("in.mov", "out.mp4", Settings{Codec: CodecH264, Quality: 23, Preset: "fast"})
	if slices.Contains(args, "-vtag") {
		t.Errorf("h264 needs no compatibility tag: %v", args)
	}
}
