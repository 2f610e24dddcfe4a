//go:build darwin

package platform

import (
	"os"
	"syscall"
	"time"
)

func birthTimeSupported() bool { return true }

// FileTimes returns the creation and last-modified instants for path.
// On Darwin the true birth time is available from stat.
func FileTimes(path string) (created, modified time.Time, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified = info.ModTime()

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	} else {
		created = modified
	}
	return created, modified, nil
}
