//go:build !darwin && !linux

package platform

import (
	"os"
	"time"
)

func birthTimeSupported() bool { return false }

// FileTimes returns the creation and last-modified instants for path.
// Without platform stat support the modification time stands in for
// creation, which keeps the earliest-instant invariant intact.
func FileTimes(path string) (created, modified time.Time, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return info.ModTime(), info.ModTime(), nil
}
