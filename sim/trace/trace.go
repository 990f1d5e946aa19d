package trace

// DayTrace collects the state rows of one simulated day, in dispatch order.
type DayTrace struct {
	rows []StateRow
}

// NewDayTrace creates a DayTrace ready for recording.
func NewDayTrace() *DayTrace {
	return &DayTrace{
		rows: make([]StateRow, 0),
	}
}

// Record appends a row. Rows must arrive in non-decreasing clock order.
func (dt *DayTrace) Record(row StateRow) {
	if n := len(dt.rows); n > 0 && row.Clock < dt.rows[n-1].Clock {
		panic("trace: row clock went backwards")
	}
	dt.rows = append(dt.rows, row)
}

// Len returns the number of recorded rows.
func (dt *DayTrace) Len() int {
	return len(dt.rows)
}

// Rows returns a copy of the recorded rows.
func (dt *DayTrace) Rows() []StateRow {
	out := make([]StateRow, len(dt.rows))
	copy(out, dt.rows)
	return out
}

// Last returns the final row; ok is false for an empty trace.
func (dt *DayTrace) Last() (StateRow, bool) {
	if len(dt.rows) == 0 {
		return StateRow{}, false
	}
	return dt.rows[len(dt.rows)-1], true
}

// Select returns the rows with Clock >= start, truncated to limit rows
// (limit <= 0 keeps all of them). The day's final row is always appended
// when the selection would otherwise leave it out.
func (dt *DayTrace) Select(start float64, limit int) []StateRow {
	return Select(dt.rows, start, limit)
}

// Select applies the DayTrace.Select query to an arbitrary row sequence.
func Select(rows []StateRow, start float64, limit int) []StateRow {
	out := make([]StateRow, 0)
	for _, r := range rows {
		if r.Clock >= start {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		if len(out) == 0 || out[len(out)-1].Iteration != last.Iteration {
			out = append(out, last)
		}
	}
	return out
}
