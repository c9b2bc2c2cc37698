//go:build darwin

package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setpriority(2) values from <sys/resource.h>
const (
	prioDarwinThread = 3
	prioDarwinBG     = 0x1000
)

// SetThreadIOPriority moves the calling thread into the background band for
// the idle class and back out of it for every other class. Callers should
// hold runtime.LockOSThread for the duration.
func SetThreadIOPriority(class IOPriority) error {
	prio := 0
	if class == IOPriorityIdle {
		prio = prioDarwinBG
	}
	if err := unix.Setpriority(prioDarwinThread, 0, prio); err != nil {
		return fmt.Errorf("setpriority(%s): %w", class, err)
	}
	return nil
}

// ThreadID returns 0 since Darwin has no per-thread kernel id to report
func ThreadID() int {
	return 0
}
