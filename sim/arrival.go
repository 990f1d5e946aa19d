package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// generateArrival draws the next inter-arrival time and, if the candidate
// falls inside the intake window, creates the customer and schedules its
// Arrival. Otherwise the arrival stream is marked exhausted.
// Called once at day start and once per dispatched Arrival, nowhere else.
func (s *DaySimulator) generateArrival() {
	u := s.consume()
	interval := s.cfg.ArrivalInterval.Sample(u)
	s.noteDraw("arrival", u, interval)

	at := s.Clock + interval
	if at > s.cfg.Workday {
		s.nextArrival = math.Inf(1)
		logrus.Debugf("[clock %08.2f] Arrivals exhausted (candidate %.2f past intake window)", s.Clock, at)
		return
	}

	c := &Customer{
		ID:          CustomerID(len(s.customers) + 1),
		ArrivalTime: at,
		State:       CustomerArrived,
	}
	s.customers = append(s.customers, c)
	s.Queue.Schedule(Event{Time: at, Kind: EventArrival, Customer: c.ID})
	s.nextArrival = at
}
