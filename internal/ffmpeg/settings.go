package ffmpeg

import (
	"math"
	"strconv"
)

// Codec is the abstract codec family. Each family maps to a software
// encoder and, on hosts that have one, a hardware-accelerated encoder.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
)

// Settings is the immutable per-run encode configuration.
type Settings struct {
	Codec    Codec
	Quality  int    // CRF scale, lower is better (software path passes it through)
	Preset   string // software speed preset; meaningless on the hardware path
	Hardware bool   // use the hardware-accelerated encoder
}

// EncoderName maps the abstract codec family to the concrete ffmpeg
// encoder for the selected path.
func (s Settings) EncoderName() string {
	if s.Hardware {
		if s.Codec == CodecH265 {
			return "hevc_videotoolbox"
		}
		return "h264_videotoolbox"
	}
	if s.Codec == CodecH265 {
		return "libx265"
	}
	return "libx264"
}

// VideoToolboxQuality remaps a CRF value (roughly 0-51, lower is
// better) onto VideoToolbox's 1-100 scale (higher is better):
// clamp(1, 100, round(100 - 1.5*crf)). CRF 23 lands near 66, CRF 28
// at 58.
func VideoToolboxQuality(crf int) int {
	q := int(math.Round(100 - 1.5*float64(crf)))
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	return q
}

// BuildArgs assembles the full ffmpeg argument list (binary name
// excluded) for one encode. Regardless of path: overwrite without
// prompting, copy audio unmodified, carry source metadata over, force
// yuv420p for player compatibility, and relocate the moov atom for
// streaming.
func BuildArgs(inputPath, outputPath string, s Settings) []string {
	args := []string{"-y", "-i", inputPath, "-c:v", s.EncoderName()}

	if s.Hardware {
		args = append(args, "-q:v", strconv.Itoa(VideoToolboxQuality(s.Quality)))
	} else {
		args = append(args, "-crf", strconv.Itoa(s.Quality), "-preset", s.Preset)
	}

	// hvc1 tag so HEVC output plays back in mainstream players.
	if s.Codec == CodecH265 {
		args = append(args, "-vtag", "hvc1")
	}

	args = append(args,
		"-map_metadata", "0",
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		"-movflags", "+faststart+use_metadata_tags",
		outputPath,
	)
	return args
}
