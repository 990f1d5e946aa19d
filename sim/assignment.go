package sim

// selectStylist maps a uniform draw to a stylist by testing the tiers in
// order against cumulative probability thresholds. The upper bound is
// inclusive: a draw exactly on a threshold belongs to the lower tier.
func (s *DaySimulator) selectStylist(r float64) *Stylist {
	cumulative := 0.0
	for _, st := range s.Stylists {
		cumulative += st.Probability
		if r <= cumulative {
			return st
		}
	}
	return s.Stylists[len(s.Stylists)-1]
}

// assign draws the customer's stylist, then starts service right away if
// that stylist is free, or parks the customer in the shared waiting pool
// and arms its snack timeout.
func (s *DaySimulator) assign(c *Customer) *Stylist {
	r := s.consume()
	st := s.selectStylist(r)
	s.noteDraw("assignment", r, 0)

	c.Stylist = st.Kind
	c.Assigned = true

	if st.State == Free {
		s.startService(c, st)
		return st
	}

	c.advance(CustomerWaiting)
	s.pool = append(s.pool, c.ID)
	s.maxQueue = max(s.maxQueue, len(s.pool))
	s.Queue.Schedule(Event{
		Time:     s.Clock + s.cfg.SnackThreshold,
		Kind:     EventSnackTimeout,
		Customer: c.ID,
	})
	return st
}
