// Package format turns durations, sizes and dates into display strings.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// Size unit thresholds (decimal)
const (
	KB = 1000
	MB = 1000 * KB
	GB = 1000 * MB
)

// PrettyTime formats seconds as m:ss, or h:mm:ss when at least an hour.
// Negative values are formatted by their absolute value.
func PrettyTime(seconds int) string {
	if seconds < 0 {
		seconds = -seconds
	}

	hours := seconds / 3600
	minutes := (seconds / 60) % 60
	seconds %= 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PrettyTimeDelta is PrettyTime with an explicit sign
func PrettyTimeDelta(seconds int) string {
	if seconds >= 0 {
		return "+" + PrettyTime(seconds)
	}
	return "-" + PrettyTime(seconds)
}

// PrettyTimeNanosec formats a nanosecond count with PrettyTime
func PrettyTimeNanosec(nanoseconds int64) string {
	return PrettyTime(int(nanoseconds / int64(time.Second)))
}

// PrettyDuration formats d with PrettyTime, truncated to whole seconds
func PrettyDuration(d time.Duration) string {
	return PrettyTimeNanosec(int64(d))
}

// PrettySize formats a byte count with decimal units. Zero yields "".
func PrettySize(bytes uint64) string {
	switch {
	case bytes == 0:
		return ""
	case bytes <= KB:
		return strconv.FormatUint(bytes, 10) + " bytes"
	case bytes <= MB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	case bytes <= GB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	}
}

// PrettyImageSize formats image dimensions as WxH
func PrettyImageSize(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}
