//go:build darwin

package platform

import (
	"runtime"
	"testing"
)

func TestSetThreadIOPriority(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := SetThreadIOPriority(IOPriorityIdle); err != nil {
		t.Fatalf("SetThreadIOPriority(idle) failed: %v", err)
	}
	if err := SetThreadIOPriority(IOPriorityBestEffort); err != nil {
		t.Errorf("SetThreadIOPriority(best-effort) failed: %v", err)
	}
}
