//go:build windows

package platform

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// FileSystemCapacity returns the total size in bytes of the volume holding
// path, or 0 if it cannot be determined
func FileSystemCapacity(path string) uint64 {
	_, total, ok := diskFreeSpace(path)
	if !ok {
		return 0
	}
	return total
}

// FileSystemFreeSpace returns the bytes available to the caller on the
// volume holding path, or 0 if it cannot be determined
func FileSystemFreeSpace(path string) uint64 {
	free, _, ok := diskFreeSpace(path)
	if !ok {
		return 0
	}
	return free
}

func diskFreeSpace(path string) (free, total uint64, ok bool) {
	p, err := windows.UTF16PtrFromString(filepath.FromSlash(path))
	if err != nil {
		return 0, 0, false
	}
	var totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return 0, 0, false
	}
	return free, total, true
}
