package sim

import (
	"math"

	"github.com/salon-sim/salon-sim/sim/trace"
)

// record appends the state row for the event just dispatched.
func (s *DaySimulator) record(kind EventKind, label string) {
	row := trace.StateRow{
		Iteration:  s.Iteration,
		Clock:      s.Clock,
		Kind:       kind.String(),
		Event:      label,
		Draws:      s.draws,
		Stylists:   make([]trace.StylistSnapshot, 0, len(s.Stylists)),
		Served:     s.served,
		Revenue:    s.revenue,
		SnackCost:  s.snackCost,
		SnackCount: s.snackCount,
		MaxQueue:   s.maxQueue,
	}
	if !math.IsInf(s.nextArrival, 1) {
		row.NextArrival = s.nextArrival
	}

	for _, st := range s.Stylists {
		nextEnd, _ := s.Queue.NextServiceEnd(st.Kind, s.Clock)
		row.Stylists = append(row.Stylists, trace.StylistSnapshot{
			Kind:           st.Kind.String(),
			State:          st.State.String(),
			Customer:       int(st.CurrentCustomer),
			Waiting:        s.waitingFor(st.Kind),
			NextEnd:        nextEnd,
			CompletionTime: st.CompletionTime,
		})
	}

	s.Trace.Record(row)
	// the row owns this step's draws from here on
	s.draws = nil
}
