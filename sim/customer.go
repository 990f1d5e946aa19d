// Defines the Customer entity and its lifecycle.

package sim

import "fmt"

// CustomerID identifies a customer within one simulated day.
// IDs are assigned 1, 2, 3, ... in arrival-generation order.
type CustomerID int

// NoCustomer is the zero CustomerID, used where a reference is unset.
const NoCustomer CustomerID = 0

// CustomerState tracks the monotonic lifecycle
// arrived -> (waiting)? -> in service -> completed.
type CustomerState int

const (
	CustomerArrived CustomerState = iota
	CustomerWaiting
	CustomerInService
	CustomerCompleted
)

func (s CustomerState) String() string {
	switch s {
	case CustomerArrived:
		return "arrived"
	case CustomerWaiting:
		return "waiting"
	case CustomerInService:
		return "in service"
	case CustomerCompleted:
		return "completed"
	default:
		return fmt.Sprintf("CustomerState(%d)", int(s))
	}
}

type Customer struct {
	ID          CustomerID
	ArrivalTime float64
	State       CustomerState

	// Stylist is the tier drawn at dispatch; meaningful only when Assigned.
	Stylist  StylistKind
	Assigned bool

	ServiceStart float64 // valid once State >= CustomerInService
	ServiceEnd   float64 // valid once State == CustomerCompleted

	SnackReceived bool
	SnackTime     float64
}

// Started reports whether service has begun.
func (c *Customer) Started() bool {
	return c.State >= CustomerInService
}

// WaitTime returns ServiceStart - ArrivalTime; ok is false until service starts.
func (c *Customer) WaitTime() (wait float64, ok bool) {
	if !c.Started() {
		return 0, false
	}
	return c.ServiceStart - c.ArrivalTime, true
}

// TotalTime returns ServiceEnd - ArrivalTime; ok is false until service ends.
func (c *Customer) TotalTime() (total float64, ok bool) {
	if c.State != CustomerCompleted {
		return 0, false
	}
	return c.ServiceEnd - c.ArrivalTime, true
}

func (c *Customer) advance(to CustomerState) {
	if to <= c.State {
		panic(fmt.Sprintf("customer C%d cannot move from %s to %s", c.ID, c.State, to))
	}
	c.State = to
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: C%d, State: %s, ArrivalTime: %.2f)", c.ID, c.State, c.ArrivalTime)
}
