package sim

import "fmt"

// EventKind is the closed set of timed actions a day can schedule.
type EventKind int

const (
	EventArrival EventKind = iota
	EventServiceEnd
	EventSnackTimeout
)

func (k EventKind) String() string {
	switch k {
	case EventArrival:
		return "Arrival"
	case EventServiceEnd:
		return "ServiceEnd"
	case EventSnackTimeout:
		return "SnackTimeout"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a pending action at an absolute clock time (minutes).
// Stylist is meaningful only for EventServiceEnd.
type Event struct {
	Time     float64
	Kind     EventKind
	Customer CustomerID
	Stylist  StylistKind

	seq uint64 // scheduling order, assigned by EventQueue.Schedule
}

// Seq returns the scheduling sequence number used to break time ties.
func (e Event) Seq() uint64 {
	return e.seq
}
