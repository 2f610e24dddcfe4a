// Package platform resolves OS-conditional behavior once per run:
// filesystem birth-time support, the macOS SetFile companion utility,
// and hardware encoder availability probed by the caller.
package platform

import (
	"os/exec"
	"runtime"
)

// Capabilities describes what the current host can do. Resolved once at
// startup and passed to the date resolver and the pipeline instead of
// scattering GOOS checks.
type Capabilities struct {
	// BirthTime is true when the filesystem exposes a true creation
	// instant (birth time). When false, the metadata-change time is
	// the closest available stand-in.
	BirthTime bool

	// HardwareEncoder is true when a hardware-accelerated encoder is
	// usable on this host.
	HardwareEncoder bool

	// SetFile is true when the macOS SetFile utility is on PATH, which
	// allows rewriting a file's birth time.
	SetFile bool
}

// Detect resolves the capability set. Hardware encoder availability
// depends on the ffmpeg build and is probed by the caller.
func Detect(setfilePath string, hardwareEncoder bool) Capabilities {
	caps := Capabilities{
		BirthTime:       birthTimeSupported(),
		HardwareEncoder: hardwareEncoder,
	}
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath(setfilePath); err == nil {
			caps.SetFile = true
		}
	}
	return caps
}
