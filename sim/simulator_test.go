package sim

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-sim/salon-sim/sim/internal/testutil"
	"github.com/salon-sim/salon-sim/sim/trace"
)

func shortDayConfig() Config {
	cfg := DefaultConfig()
	cfg.Workday = 10
	cfg.MaxSimTime = 100
	return cfg
}

func newScriptedSimulator(t *testing.T, cfg Config, draws ...float64) (*DaySimulator, *testutil.ScriptedSource) {
	t.Helper()
	src := testutil.NewScriptedSource(draws...)
	ds, err := NewDaySimulator(cfg, src)
	require.NoError(t, err)
	return ds, src
}

func TestDaySimulator_ScriptedDay_RevenueAtServiceStart(t *testing.T) {
	// GIVEN arrival [2,12], thresholds apprentice <= 0.15, veteran A <= 0.60
	// and draws: arrival 0.05, assignment 0.50, service 0.30, next arrival 0.99
	ds, src := newScriptedSimulator(t, shortDayConfig(), 0.05, 0.50, 0.30, 0.99)

	// WHEN the day runs
	stats := ds.Run()

	// THEN customer 1 arrives at 2.5, is served by veteran A for 11.6 minutes
	rows := ds.Trace.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 4, src.Drawn())

	first := rows[0]
	testutil.AssertFloat64Equal(t, "arrival clock", 2.5, first.Clock, 1e-9)
	assert.Equal(t, "Arrival C1 -> Veteran A", first.Event)
	assert.True(t, first.Revenue.Equal(decimal.NewFromInt(32500)), "fee recognized at service start, got %s", first.Revenue)
	assert.Equal(t, "Busy", first.Stylists[VeteranA].State)
	assert.Equal(t, 1, first.Stylists[VeteranA].Customer)
	testutil.AssertFloat64Equal(t, "next service end", 14.1, first.Stylists[VeteranA].NextEnd, 1e-9)
	testutil.AssertFloat64Equal(t, "completion time", 14.1, first.Stylists[VeteranA].CompletionTime, 1e-9)
	assert.Equal(t, 0.0, first.NextArrival, "second candidate 14.4 is past the intake window")

	require.Len(t, first.Draws, 3)
	assert.Equal(t, "assignment", first.Draws[0].Name)
	assert.Equal(t, "service", first.Draws[1].Name)
	testutil.AssertFloat64Equal(t, "service duration", 11.6, first.Draws[1].Value, 1e-9)
	assert.Equal(t, "arrival", first.Draws[2].Name)

	second := rows[1]
	testutil.AssertFloat64Equal(t, "service end clock", 14.1, second.Clock, 1e-9)
	assert.Equal(t, 1, second.Served)
	assert.True(t, second.Revenue.Equal(first.Revenue), "no revenue at completion")
	assert.Equal(t, "Free", second.Stylists[VeteranA].State)
	assert.Empty(t, second.Draws)

	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(32500)))
	assert.Equal(t, 1, stats.CustomersServed)
	assert.Equal(t, 2, stats.Iterations)
	testutil.AssertFloat64Equal(t, "final clock", 14.1, stats.FinalClock, 1e-9)
	assert.False(t, stats.Truncated)

	_, ok := ds.NextArrival()
	assert.False(t, ok, "arrivals exhausted after the 0.99 draw")
	assert.Equal(t, 10.0, ds.Config().Workday)

	customers := ds.Customers()
	require.Len(t, customers, 1)
	wait, ok := customers[0].WaitTime()
	assert.True(t, ok)
	assert.Equal(t, 0.0, wait)
	total, ok := customers[0].TotalTime()
	assert.True(t, ok)
	testutil.AssertFloat64Equal(t, "total time", 11.6, total, 1e-9)
}

func TestDaySimulator_QueueAndSnack(t *testing.T) {
	// GIVEN a 5 minute snack threshold and two customers drawn to veteran A
	cfg := shortDayConfig()
	cfg.SnackThreshold = 5
	ds, src := newScriptedSimulator(t, cfg,
		0.0,           // C1 arrives at 2
		0.5, 0.5, 0.0, // C1 -> A, service 12 (ends 14), C2 arrives at 4
		0.5, 0.9, // C2 -> A (busy, waits), next candidate 15 is past intake
		0.0, // C2 starts at 14, service 11 (ends 25)
	)

	// WHEN the day runs
	stats := ds.Run()

	// THEN C2 waited, got one snack at 9, and was served after C1
	assert.Equal(t, 0, src.Remaining())
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(65000)))
	assert.True(t, stats.SnackCost.Equal(decimal.NewFromInt(5500)))
	assert.True(t, stats.NetProfit.Equal(decimal.NewFromInt(59500)))
	assert.Equal(t, 2, stats.CustomersServed)
	assert.Equal(t, 1, stats.SnackCount)
	assert.Equal(t, 1, stats.MaxQueueLength)
	assert.Equal(t, 5, stats.Iterations)
	assert.InDelta(t, 25.0, stats.FinalClock, 1e-9)

	rows := ds.Trace.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[1].Stylists[VeteranA].Waiting)
	assert.Equal(t, 1, rows[1].MaxQueue)
	assert.Equal(t, "Snack C2", rows[2].Event)
	assert.Equal(t, EventSnackTimeout.String(), rows[2].Kind)
	assert.Equal(t, "Service end C1 (Veteran A), starts C2", rows[3].Event)
	assert.Equal(t, 2, rows[3].Stylists[VeteranA].Customer)
	assert.Equal(t, 0, rows[3].Stylists[VeteranA].Waiting)
	assert.Equal(t, "Service end C2 (Veteran A)", rows[4].Event)
	assert.Equal(t, 2, rows[4].Served)

	c2 := ds.Customers()[1]
	assert.True(t, c2.SnackReceived)
	assert.Equal(t, 9.0, c2.SnackTime)
	wait, ok := c2.WaitTime()
	require.True(t, ok)
	assert.Equal(t, 10.0, wait)
}

func TestDaySimulator_EarlyStopOnCappedIteration_NotTruncated(t *testing.T) {
	// GIVEN a day whose natural end falls on exactly the iteration cap and
	// leaves C2's stale snack timeout (due at 54) in the queue
	cfg := shortDayConfig()
	cfg.SnackThreshold = 50
	cfg.MaxIterations = 4
	ds, _ := newScriptedSimulator(t, cfg,
		0.0,           // C1 arrives at 2
		0.5, 0.5, 0.0, // C1 -> A, service 12 (ends 14), C2 arrives at 4
		0.5, 0.9, // C2 -> A (busy, waits), next candidate 15 is past intake
		0.0, // C2 starts at 14, service 11 (ends 25)
	)

	// WHEN the day runs
	stats := ds.Run()

	// THEN it ended by the early-stop rule, not by the cap
	assert.Equal(t, 4, stats.Iterations)
	assert.Equal(t, 2, stats.CustomersServed)
	assert.Equal(t, 0, ds.Waiting())
	assert.Equal(t, 1, ds.Queue.Len(), "stale snack timeout still pending")
	assert.False(t, stats.Truncated)
}

func TestDaySimulator_CapReachedWithWorkLeft_Truncated(t *testing.T) {
	// GIVEN the same day capped one iteration earlier, with C2 still in service
	cfg := shortDayConfig()
	cfg.SnackThreshold = 50
	cfg.MaxIterations = 3
	ds, _ := newScriptedSimulator(t, cfg, 0.0, 0.5, 0.5, 0.0, 0.5, 0.9, 0.0)

	// WHEN the day runs
	stats := ds.Run()

	// THEN the cap stopped it
	assert.Equal(t, 3, stats.Iterations)
	assert.Equal(t, 1, stats.CustomersServed)
	assert.True(t, stats.Truncated)
}

func TestDaySimulator_AssignmentBoundary_SelectsLowerTier(t *testing.T) {
	ds, _ := newScriptedSimulator(t, DefaultConfig())

	tests := []struct {
		draw float64
		want StylistKind
	}{
		{0.0, Apprentice},
		{0.15, Apprentice},
		{0.1500001, VeteranA},
		{0.50, VeteranA},
		{0.60, VeteranA},
		{0.6000001, VeteranB},
		{0.9999999, VeteranB},
	}
	for _, tt := range tests {
		if got := ds.selectStylist(tt.draw).Kind; got != tt.want {
			t.Errorf("selectStylist(%v) = %s, want %s", tt.draw, got, tt.want)
		}
	}
}

func TestDaySimulator_SnackTimeout_StaleIsNoOp(t *testing.T) {
	// GIVEN a customer already in service when its timeout fires
	ds, _ := newScriptedSimulator(t, DefaultConfig())
	ds.customers = []*Customer{{ID: 1, ArrivalTime: 1, State: CustomerInService, ServiceStart: 20, Assigned: true}}
	ds.Clock = 31

	// WHEN the timeout is handled
	ds.handleSnackTimeout(Event{Time: 31, Kind: EventSnackTimeout, Customer: 1})

	// THEN nothing is charged
	assert.Equal(t, 0, ds.snackCount)
	assert.True(t, ds.snackCost.IsZero())
	assert.False(t, ds.customers[0].SnackReceived)
}

func TestDaySimulator_SnackTimeout_AtMostOncePerCustomer(t *testing.T) {
	ds, _ := newScriptedSimulator(t, DefaultConfig())
	ds.customers = []*Customer{{ID: 1, ArrivalTime: 1, State: CustomerWaiting, Assigned: true}}
	ds.Clock = 31

	ds.handleSnackTimeout(Event{Time: 31, Kind: EventSnackTimeout, Customer: 1})
	ds.handleSnackTimeout(Event{Time: 31, Kind: EventSnackTimeout, Customer: 1})

	assert.Equal(t, 1, ds.snackCount)
	assert.True(t, ds.snackCost.Equal(decimal.NewFromInt(5500)))
}

func TestDaySimulator_ServiceEnd_FirstComeFirstServedPerStylist(t *testing.T) {
	// GIVEN veteran B busy with C1 and a pool of [C2->A, C3->B, C4->B]
	ds, _ := newScriptedSimulator(t, DefaultConfig(), 0.5)
	ds.customers = []*Customer{
		{ID: 1, State: CustomerInService, Stylist: VeteranB, Assigned: true},
		{ID: 2, State: CustomerWaiting, Stylist: VeteranA, Assigned: true},
		{ID: 3, State: CustomerWaiting, Stylist: VeteranB, Assigned: true},
		{ID: 4, State: CustomerWaiting, Stylist: VeteranB, Assigned: true},
	}
	ds.pool = []CustomerID{2, 3, 4}
	ds.Stylists[VeteranB].assign(1, 20)
	ds.Clock = 20

	// WHEN veteran B finishes
	ds.handleServiceEnd(Event{Time: 20, Kind: EventServiceEnd, Customer: 1, Stylist: VeteranB})

	// THEN C3, the earliest waiting for B, starts; C2 and C4 stay pooled
	assert.Equal(t, CustomerID(3), ds.Stylists[VeteranB].CurrentCustomer)
	assert.Equal(t, []CustomerID{2, 4}, ds.pool)
	assert.Equal(t, 1, ds.served)
	assert.Equal(t, 1, ds.waitingFor(VeteranB))
	assert.Equal(t, 1, ds.waitingFor(VeteranA))
	assert.True(t, ds.revenue.Equal(decimal.NewFromInt(32500)))
}

func TestDaySimulator_ContinuousArrivals_StopsAtIterationCap(t *testing.T) {
	// GIVEN a zero inter-arrival window, which keeps arriving at t=0 forever
	cfg := DefaultConfig()
	cfg.ArrivalInterval = Range{Min: 0, Max: 0}
	cfg.MaxIterations = 500

	ds, err := NewDaySimulator(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// WHEN the day runs
	stats := ds.Run()

	// THEN the controller returns at the cap and reports truncation
	assert.Equal(t, 500, stats.Iterations)
	assert.True(t, stats.Truncated)
	assert.Equal(t, 500, ds.Trace.Len())
}

func TestDaySimulator_MaxSimTime_StopsBeforeDispatch(t *testing.T) {
	// GIVEN a hard clock limit shorter than the first service
	cfg := shortDayConfig()
	cfg.MaxSimTime = 5
	ds, _ := newScriptedSimulator(t, cfg, 0.05, 0.50, 0.30, 0.99)

	stats := ds.Run()

	// THEN the service end at 14.1 is never dispatched
	assert.Equal(t, 1, stats.Iterations)
	assert.Equal(t, 0, stats.CustomersServed)
	assert.InDelta(t, 2.5, stats.FinalClock, 1e-9)
}

func TestDaySimulator_Run_ResetsBetweenDays(t *testing.T) {
	ds, _ := newScriptedSimulator(t, shortDayConfig(),
		0.05, 0.50, 0.30, 0.99,
		0.05, 0.50, 0.30, 0.99,
	)

	first := ds.Run()
	second := ds.Run()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, ds.Trace.Len())
	for _, st := range ds.Stylists {
		assert.Equal(t, Free, st.State)
	}
}

func TestDaySimulator_Invariants_SeededDays(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		ds, err := NewDaySimulator(cfg, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		stats := ds.Run()
		rows := ds.Trace.Rows()
		require.NotEmpty(t, rows)

		// Rows are in clock order; max queue, served and revenue never decrease
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			if cur.Clock < prev.Clock {
				t.Fatalf("seed %d row %d: clock %v < %v", seed, i, cur.Clock, prev.Clock)
			}
			if cur.MaxQueue < prev.MaxQueue {
				t.Fatalf("seed %d row %d: max queue decreased %d -> %d", seed, i, prev.MaxQueue, cur.MaxQueue)
			}
			if cur.Iteration != prev.Iteration+1 {
				t.Fatalf("seed %d row %d: iteration %d after %d", seed, i, cur.Iteration, prev.Iteration)
			}
			if cur.Revenue.LessThan(prev.Revenue) || cur.Served < prev.Served {
				t.Fatalf("seed %d row %d: accumulators decreased", seed, i)
			}
		}

		snacks := 0
		for _, c := range ds.Customers() {
			if wait, ok := c.WaitTime(); ok && wait < 0 {
				t.Errorf("seed %d C%d: negative wait %v", seed, c.ID, wait)
			}
			if c.ArrivalTime > cfg.Workday {
				t.Errorf("seed %d C%d: arrival %v after intake window", seed, c.ID, c.ArrivalTime)
			}
			if c.SnackReceived {
				snacks++
				if c.SnackTime-c.ArrivalTime < cfg.SnackThreshold-1e-9 {
					t.Errorf("seed %d C%d: snack after %v minutes", seed, c.ID, c.SnackTime-c.ArrivalTime)
				}
				if c.Started() && c.ServiceStart < c.SnackTime {
					t.Errorf("seed %d C%d: snack at %v after service start %v", seed, c.ID, c.SnackTime, c.ServiceStart)
				}
			}
		}
		assert.Equal(t, stats.SnackCount, snacks, "seed %d", seed)

		// the default day ends early: everything served, nobody waiting
		assert.False(t, stats.Truncated)
		assert.Equal(t, 0, ds.Waiting())
		assert.Equal(t, len(ds.Customers()), stats.CustomersServed, "seed %d", seed)
		last, _ := ds.Trace.Last()
		assert.Equal(t, stats.MaxQueueLength, last.MaxQueue)
		assert.True(t, last.Revenue.Equal(stats.Revenue))
	}
}

func TestDaySimulator_SameSeed_IdenticalTrace(t *testing.T) {
	run := func() []trace.StateRow {
		ds, err := NewDaySimulator(DefaultConfig(), rand.New(rand.NewSource(42)))
		require.NoError(t, err)
		ds.Run()
		return ds.Trace.Rows()
	}
	assert.Equal(t, run(), run())
}

func TestRunSingleDay_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VeteranA.Probability = 0.9

	_, _, err := RunSingleDay(cfg, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
