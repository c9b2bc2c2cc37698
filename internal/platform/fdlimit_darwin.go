//go:build darwin

package platform

import (
	"fmt"
	"log"

	"golang.org/x/sys/unix"
)

// IncreaseFDLimit raises the soft limit on open file descriptors from the
// default of 256 to kern.maxfilesperproc. getrlimit reports an unlimited
// hard limit on macOS, so sysctl is the real ceiling.
func IncreaseFDLimit() (uint64, error) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("getrlimit: %w", err)
	}

	maxFD, err := unix.SysctlUint32("kern.maxfilesperproc")
	if err != nil {
		return limit.Cur, fmt.Errorf("sysctl kern.maxfilesperproc: %w", err)
	}

	limit.Cur = uint64(maxFD)
	if limit.Max < limit.Cur {
		limit.Cur = limit.Max
	}
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("setrlimit: %w", err)
	}
	log.Printf("Max fd: %d", limit.Cur)
	return limit.Cur, nil
}
