//go:build linux

package platform

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// birthTimeSupported probes statx once; btime needs kernel 4.11+ and a
// filesystem that records it (ext4, xfs, btrfs do).
func birthTimeSupported() bool {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, ".", 0, unix.STATX_BTIME, &stx); err != nil {
		return false
	}
	return stx.Mask&unix.STATX_BTIME != 0
}

// FileTimes returns the creation and last-modified instants for path.
// The birth time comes from statx where the kernel and filesystem
// provide it; otherwise the metadata-change time stands in.
func FileTimes(path string) (created, modified time.Time, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	modified = info.ModTime()

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err == nil &&
		stx.Mask&unix.STATX_BTIME != 0 && stx.Btime.Sec != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
		return created, modified, nil
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		created = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	} else {
		created = modified
	}
	return created, modified, nil
}
