package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// LookPath verifies the encoder binary exists. A missing binary is the
// one fatal precondition: the batch refuses to start without it.
func LookPath(ffmpegPath string) error {
	if _, err := exec.LookPath(ffmpegPath); err != nil {
		return fmt.Errorf("ffmpeg not found (%q): install it or set ffmpeg_path in the config", ffmpegPath)
	}
	return nil
}

// DetectEncoders asks the ffmpeg build which encoders it ships. The
// result is consulted once per run; a probe failure degrades to
// software-only rather than an error.
func DetectEncoders(ctx context.Context, ffmpegPath string) map[string]bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffmpegPath, "-encoders", "-hide_banner")
	output, err := cmd.Output()
	if err != nil {
		return map[string]bool{"libx264": true, "libx265": true}
	}

	list := string(output)
	available := make(map[string]bool)
	for _, name := range []string{"libx264", "libx265", "h264_videotoolbox", "hevc_videotoolbox"} {
		available[name] = strings.Contains(list, name)
	}
	return available
}

// HardwareAvailable reports whether the hardware path can serve the
// given codec on this host. VideoToolbox is the only hardware path and
// exists on Darwin only.
func HardwareAvailable(encoders map[string]bool, codec Codec) bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	return encoders[Settings{Codec: codec, Hardware: true}.EncoderName()]
}
