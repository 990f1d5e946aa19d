// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/salon-sim/salon-sim/sim/trace"
)

// DayStats summarizes one simulated day.
type DayStats struct {
	Revenue         decimal.Decimal `yaml:"revenue"`
	SnackCost       decimal.Decimal `yaml:"snack_cost"`
	NetProfit       decimal.Decimal `yaml:"net_profit"`
	CustomersServed int             `yaml:"customers_served"`
	SnackCount      int             `yaml:"snack_count"`
	MaxQueueLength  int             `yaml:"max_queue_length"`
	Iterations      int             `yaml:"iterations"`
	FinalClock      float64         `yaml:"final_clock"`
	// Truncated is set when the iteration cap stopped the day with events still pending.
	Truncated bool `yaml:"truncated,omitempty"`
}

// DaySimulator is the day controller: it holds the clock, the stylists,
// the day's customers, the waiting pool, the event queue, and the event loop.
// A DaySimulator is not safe for concurrent use; run independent days
// concurrently with independent DaySimulators.
type DaySimulator struct {
	cfg Config
	rng RandomSource

	Clock     float64
	Iteration int
	Stylists  []*Stylist // indexed by StylistKind; persist across days
	Queue     *EventQueue
	Trace     *trace.DayTrace

	customers   []*Customer  // customers[id-1]
	pool        []CustomerID // shared waiting pool, enqueue order
	nextArrival float64      // +Inf once arrivals are exhausted
	draws       []trace.Draw // consumed by the event being dispatched

	truncated bool // the iteration cap stopped the day with events still pending

	served     int
	revenue    decimal.Decimal
	snackCost  decimal.Decimal
	snackCount int
	maxQueue   int
}

// NewDaySimulator validates cfg and creates a controller drawing from rng.
func NewDaySimulator(cfg Config, rng RandomSource) (*DaySimulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source")
	}
	s := &DaySimulator{
		cfg:      cfg,
		rng:      rng,
		Stylists: newStylists(cfg),
		Queue:    NewEventQueue(),
		Trace:    trace.NewDayTrace(),
	}
	s.reset()
	return s, nil
}

// Config returns the configuration the simulator was built with.
func (s *DaySimulator) Config() Config {
	return s.cfg
}

// reset clears all per-day state. Stylist definitions survive; their state does not.
func (s *DaySimulator) reset() {
	s.Clock = 0
	s.Iteration = 0
	for _, st := range s.Stylists {
		st.Reset()
	}
	s.Queue.Clear()
	s.Trace = trace.NewDayTrace()
	s.customers = nil
	s.pool = nil
	s.nextArrival = 0
	s.draws = nil
	s.truncated = false
	s.served = 0
	s.revenue = decimal.Zero
	s.snackCost = decimal.Zero
	s.snackCount = 0
	s.maxQueue = 0
}

// Run simulates one full day from a clean state and returns its statistics.
// The state rows of the day are available in s.Trace afterwards.
func (s *DaySimulator) Run() DayStats {
	s.reset()
	s.generateArrival()

	for s.Queue.Len() > 0 {
		if s.Iteration >= s.cfg.MaxIterations {
			s.truncated = true
			break
		}
		ev, _ := s.Queue.PopNext()

		// end the day if the hard clock limit is reached
		if ev.Time > s.cfg.MaxSimTime {
			break
		}
		// arrivals past the intake window are dropped without a row
		if ev.Kind == EventArrival && ev.Time > s.cfg.Workday {
			continue
		}

		s.dispatch(ev)

		if s.Clock > s.cfg.Workday && len(s.pool) == 0 && s.allFree() {
			break
		}
	}

	stats := s.stats()
	if stats.Truncated {
		logrus.Warnf("[clock %08.2f] Day stopped at iteration cap %d with %d pending events",
			s.Clock, s.cfg.MaxIterations, s.Queue.Len())
	}
	logrus.Debugf("[clock %08.2f] Day ended after %d iterations", s.Clock, s.Iteration)
	return stats
}

// dispatch advances the clock to ev, runs its handler, and records one row.
func (s *DaySimulator) dispatch(ev Event) {
	if ev.Time < s.Clock {
		panic(fmt.Sprintf("clock went backwards: %g < %g", ev.Time, s.Clock))
	}
	s.Clock = ev.Time
	s.Iteration++
	s.draws = nil

	logrus.Debugf("[clock %08.2f] Executing %s C%d", s.Clock, ev.Kind, ev.Customer)

	var label string
	switch ev.Kind {
	case EventArrival:
		label = s.handleArrival(ev)
	case EventServiceEnd:
		label = s.handleServiceEnd(ev)
	case EventSnackTimeout:
		label = s.handleSnackTimeout(ev)
	default:
		panic(fmt.Sprintf("unknown event kind %d", int(ev.Kind)))
	}

	s.record(ev.Kind, label)
}

func (s *DaySimulator) handleArrival(ev Event) string {
	c := s.customer(ev.Customer)
	st := s.assign(c)
	s.generateArrival()
	return fmt.Sprintf("Arrival C%d -> %s", c.ID, st.Kind)
}

func (s *DaySimulator) allFree() bool {
	for _, st := range s.Stylists {
		if st.State != Free {
			return false
		}
	}
	return true
}

func (s *DaySimulator) customer(id CustomerID) *Customer {
	if id <= 0 || int(id) > len(s.customers) {
		panic(fmt.Sprintf("unknown customer C%d", id))
	}
	return s.customers[id-1]
}

func (s *DaySimulator) stylist(kind StylistKind) *Stylist {
	return s.Stylists[kind]
}

// Customers returns copies of every customer generated so far in the current day.
func (s *DaySimulator) Customers() []Customer {
	out := make([]Customer, len(s.customers))
	for i, c := range s.customers {
		out[i] = *c
	}
	return out
}

// Waiting returns the number of customers in the shared waiting pool.
func (s *DaySimulator) Waiting() int {
	return len(s.pool)
}

// NextArrival returns the pending arrival time; ok is false once arrivals are exhausted.
func (s *DaySimulator) NextArrival() (float64, bool) {
	if math.IsInf(s.nextArrival, 1) {
		return 0, false
	}
	return s.nextArrival, true
}

// consume takes one uniform draw from the day's random source.
func (s *DaySimulator) consume() float64 {
	u := s.rng.Float64()
	if u < 0 || u >= 1 {
		panic(fmt.Sprintf("random source returned %g outside [0,1)", u))
	}
	return u
}

func (s *DaySimulator) noteDraw(name string, u, value float64) {
	s.draws = append(s.draws, trace.Draw{Name: name, Random: u, Value: value})
}

func (s *DaySimulator) stats() DayStats {
	return DayStats{
		Revenue:         s.revenue,
		SnackCost:       s.snackCost,
		NetProfit:       s.revenue.Sub(s.snackCost),
		CustomersServed: s.served,
		SnackCount:      s.snackCount,
		MaxQueueLength:  s.maxQueue,
		Iterations:      s.Iteration,
		FinalClock:      s.Clock,
		Truncated:       s.truncated,
	}
}
