//go:build !linux && !darwin

package platform

// SetThreadIOPriority is a no-op on this platform
func SetThreadIOPriority(class IOPriority) error {
	return nil
}

// ThreadID returns 0 on this platform
func ThreadID() int {
	return 0
}
