package trace

// TraceSummary aggregates statistics from a DayTrace.
type TraceSummary struct {
	TotalRows     int
	EventCounts   map[string]int // row Kind -> count
	PeakWaiting   int            // largest total pool size seen in any row
	PeakWaitingAt float64        // clock of the first row with PeakWaiting
	BusyRows      map[string]int // stylist kind -> rows in which it was busy
	FinalClock    float64
	DrawsConsumed int
}

// Summarize computes aggregate statistics from a DayTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(dt *DayTrace) *TraceSummary {
	summary := &TraceSummary{
		EventCounts: make(map[string]int),
		BusyRows:    make(map[string]int),
	}
	if dt == nil {
		return summary
	}

	summary.TotalRows = len(dt.rows)
	for _, r := range dt.rows {
		summary.EventCounts[r.Kind]++
		summary.DrawsConsumed += len(r.Draws)

		waiting := 0
		for _, st := range r.Stylists {
			waiting += st.Waiting
			if st.State == "Busy" {
				summary.BusyRows[st.Kind]++
			}
		}
		if waiting > summary.PeakWaiting {
			summary.PeakWaiting = waiting
			summary.PeakWaitingAt = r.Clock
		}
		summary.FinalClock = r.Clock
	}

	return summary
}
