package platform

// IOPriority is an I/O scheduling class
type IOPriority int

const (
	IOPriorityNone IOPriority = iota
	IOPriorityRealtime
	IOPriorityBestEffort
	IOPriorityIdle
)

func (p IOPriority) String() string {
	switch p {
	case IOPriorityNone:
		return "none"
	case IOPriorityRealtime:
		return "realtime"
	case IOPriorityBestEffort:
		return "best-effort"
	case IOPriorityIdle:
		return "idle"
	default:
		return "unknown"
	}
}
