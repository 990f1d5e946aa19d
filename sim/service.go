package sim

import "fmt"

// startService draws the service duration, marks the stylist busy, and
// schedules the ServiceEnd. The fee is recognized now, at service start,
// not when the service completes.
func (s *DaySimulator) startService(c *Customer, st *Stylist) {
	u := s.consume()
	duration := st.Service.Sample(u)
	s.noteDraw("service", u, duration)

	end := s.Clock + duration
	c.advance(CustomerInService)
	c.ServiceStart = s.Clock
	st.assign(c.ID, end)

	s.Queue.Schedule(Event{
		Time:     end,
		Kind:     EventServiceEnd,
		Customer: c.ID,
		Stylist:  st.Kind,
	})
	s.revenue = s.revenue.Add(st.Fee)
}

// handleServiceEnd frees the stylist and starts the earliest pooled
// customer waiting for that same stylist, if any.
func (s *DaySimulator) handleServiceEnd(ev Event) string {
	st := s.stylist(ev.Stylist)
	c := s.customer(ev.Customer)
	if st.CurrentCustomer != c.ID {
		panic(fmt.Sprintf("service end for C%d but %s is serving C%d", c.ID, st.Kind, st.CurrentCustomer))
	}

	c.advance(CustomerCompleted)
	c.ServiceEnd = s.Clock
	st.Reset()
	s.served++

	label := fmt.Sprintf("Service end C%d (%s)", c.ID, st.Kind)
	if next := s.dequeueFor(st.Kind); next != nil {
		s.startService(next, st)
		label += fmt.Sprintf(", starts C%d", next.ID)
	}
	return label
}

// dequeueFor removes and returns the earliest-enqueued pooled customer
// assigned to kind whose service has not started, or nil.
func (s *DaySimulator) dequeueFor(kind StylistKind) *Customer {
	for i, id := range s.pool {
		c := s.customer(id)
		if c.Stylist != kind || c.Started() {
			continue
		}
		s.pool = append(s.pool[:i], s.pool[i+1:]...)
		return c
	}
	return nil
}

// waitingFor counts pooled customers assigned to kind whose service has not started.
func (s *DaySimulator) waitingFor(kind StylistKind) int {
	n := 0
	for _, id := range s.pool {
		c := s.customer(id)
		if c.Stylist == kind && !c.Started() {
			n++
		}
	}
	return n
}
