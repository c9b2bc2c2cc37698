//go:build linux

package platform

import (
	"runtime"
	"testing"
)

func TestSetThreadIOPriority(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if ThreadID() <= 0 {
		t.Fatalf("ThreadID() = %d", ThreadID())
	}
	// Lowering to the idle class never needs privileges
	if err := SetThreadIOPriority(IOPriorityIdle); err != nil {
		t.Skipf("ioprio_set unavailable: %v", err)
	}
}
