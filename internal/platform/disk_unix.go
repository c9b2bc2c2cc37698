//go:build linux || darwin || freebsd || dragonfly

package platform

import "golang.org/x/sys/unix"

// FileSystemCapacity returns the total size in bytes of the filesystem
// holding path, or 0 if it cannot be determined
func FileSystemCapacity(path string) uint64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0
	}
	return uint64(st.Blocks) * uint64(st.Bsize)
}

// FileSystemFreeSpace returns the bytes available to unprivileged users on
// the filesystem holding path, or 0 if it cannot be determined
func FileSystemFreeSpace(path string) uint64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0
	}
	return uint64(st.Bavail) * uint64(st.Bsize)
}
