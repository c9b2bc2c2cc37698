//go:build linux

package platform

import (
	"fmt"
	"log"

	"golang.org/x/sys/unix"
)

// IncreaseFDLimit raises the soft limit on open file descriptors to the
// hard limit and returns the new soft limit
func IncreaseFDLimit() (uint64, error) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("getrlimit: %w", err)
	}
	if limit.Cur >= limit.Max {
		return limit.Cur, nil
	}

	limit.Cur = limit.Max
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		return 0, fmt.Errorf("setrlimit: %w", err)
	}
	log.Printf("Max fd: %d", limit.Cur)
	return limit.Cur, nil
}
