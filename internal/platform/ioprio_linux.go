//go:build linux

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	ioprioClassShift = 13
	ioprioWhoProcess = 1
	// priority level within the best-effort and realtime classes
	ioprioDefaultLevel = 4
)

// SetThreadIOPriority sets the I/O scheduling class of the calling OS
// thread. Callers should hold runtime.LockOSThread for the duration.
func SetThreadIOPriority(class IOPriority) error {
	prio := uintptr(ioprioDefaultLevel | int(class)<<ioprioClassShift)
	_, _, errno := unix.Syscall(unix.SYS_IOPRIO_SET, ioprioWhoProcess, uintptr(ThreadID()), prio)
	if errno != 0 {
		return fmt.Errorf("ioprio_set(%s): %w", class, errno)
	}
	return nil
}

// ThreadID returns the kernel id of the calling thread
func ThreadID() int {
	return unix.Gettid()
}
