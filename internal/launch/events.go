package launch

import (
	"github.com/ytget/flat-launcher/internal/model"
)

// EventKind identifies the payload carried by an Event
type EventKind int

const (
	// EventState reports the worker starting (Running=true) or finishing (Running=false)
	EventState EventKind = iota
	// EventStatus reports a phase change
	EventStatus
	// EventProgress carries the current installation progress
	EventProgress
	// EventExited carries the game's exit code
	EventExited
	// EventFailed carries the error that stopped the launch
	EventFailed
	// EventCancelled reports a launch stopped by Cancel
	EventCancelled
)

func (k EventKind) String() string {
	switch k {
	case EventState:
		return "state"
	case EventStatus:
		return "status"
	case EventProgress:
		return "progress"
	case EventExited:
		return "exited"
	case EventFailed:
		return "failed"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is one message from the worker to the UI
type Event struct {
	Kind     EventKind
	Running  bool
	Status   model.LaunchStatus
	Progress model.Progress
	ExitCode int
	Err      error
}
