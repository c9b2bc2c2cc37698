//go:build !linux && !darwin && !freebsd && !dragonfly && !windows

package platform

// FileSystemCapacity is not implemented on this platform and returns 0
func FileSystemCapacity(path string) uint64 {
	return 0
}

// FileSystemFreeSpace is not implemented on this platform and returns 0
func FileSystemFreeSpace(path string) uint64 {
	return 0
}
