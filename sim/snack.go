package sim

import "fmt"

// handleSnackTimeout grants the one-time snack to a customer still waiting
// when the timeout fires. Timeouts for customers already in service are stale
// and change nothing.
func (s *DaySimulator) handleSnackTimeout(ev Event) string {
	c := s.customer(ev.Customer)
	if c.State != CustomerWaiting || c.SnackReceived {
		return fmt.Sprintf("Snack C%d (no longer waiting)", c.ID)
	}

	c.SnackReceived = true
	c.SnackTime = s.Clock
	s.snackCost = s.snackCost.Add(s.cfg.SnackCost)
	s.snackCount++
	return fmt.Sprintf("Snack C%d", c.ID)
}
