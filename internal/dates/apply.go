package dates

import (
	"os"
	"os/exec"
	"time"

	"github.com/gwlsn/timepress/internal/logger"
	"github.com/gwlsn/timepress/internal/platform"
)

// setFileLayout is what the macOS SetFile utility expects; it reads the
// string in local time.
const setFileLayout = "01/02/2006 15:04:05"

// Apply writes the resolved earliest instant onto path: the
// modification time always, and the birth time where the platform has a
// companion utility for it. The birth-time write is best-effort — a
// missing or failing utility never fails the call.
func Apply(path string, earliest time.Time, caps platform.Capabilities, setfilePath string) error {
	if err := os.Chtimes(path, time.Now(), earliest); err != nil {
		return err
	}

	if caps.SetFile {
		stamp := earliest.Local().Format(setFileLayout)
		if err := exec.Command(setfilePath, "-d", stamp, path).Run(); err != nil {
			logger.Debug("SetFile birth-time write failed", "path", path, "error", err)
		}
	}
	return nil
}
