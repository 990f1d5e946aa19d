package cmd

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salon-sim/salon-sim/sim"
	"github.com/salon-sim/salon-sim/sim/trace"
)

func TestWriteAggregateReport_ShowsSummaryAndDaily(t *testing.T) {
	// GIVEN two days of known results
	daily := []sim.DayStats{
		{Revenue: decimal.NewFromInt(100000), SnackCost: decimal.NewFromInt(11000), NetProfit: decimal.NewFromInt(89000), CustomersServed: 4, SnackCount: 2, MaxQueueLength: 3},
		{Revenue: decimal.NewFromInt(50000), NetProfit: decimal.NewFromInt(50000), CustomersServed: 2, MaxQueueLength: 1},
	}
	agg := sim.Aggregate(daily, 2)

	// WHEN rendered with the daily table
	var buf bytes.Buffer
	require.NoError(t, writeAggregateReport(&buf, agg, true))
	out := buf.String()

	// THEN the summary and one line per day appear
	assert.Contains(t, out, "Shop Summary (2 days)")
	assert.Contains(t, out, "75000.00")
	assert.Contains(t, out, "50000.00 .. 100000.00")
	assert.Contains(t, out, "P(snacks >= 2)")
	assert.Contains(t, out, "0.5000 (1 days)")
	assert.Contains(t, out, "Daily Results")
	assert.NotContains(t, out, "Truncated days")
}

func TestWriteAggregateReport_WithoutDaily(t *testing.T) {
	agg := sim.Aggregate([]sim.DayStats{{Revenue: decimal.NewFromInt(1)}}, 5)

	var buf bytes.Buffer
	require.NoError(t, writeAggregateReport(&buf, agg, false))

	assert.NotContains(t, buf.String(), "Daily Results")
}

func TestWriteStateRows_OneLinePerRow(t *testing.T) {
	// GIVEN a seeded day
	_, dt, err := sim.RunSingleDay(sim.DefaultConfig(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	rows := dt.Select(0, 5)

	// WHEN the rows are rendered
	var buf bytes.Buffer
	require.NoError(t, writeStateRows(&buf, rows))

	// THEN there is a header plus one line per row, starting with the first arrival
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, len(rows)+1)
	assert.Contains(t, lines[0], "Veteran A")
	assert.Contains(t, lines[1], "Arrival C1")
	assert.Contains(t, lines[1], "arrival=")
}

func TestWriteTraceSummary_ListsEventKinds(t *testing.T) {
	_, dt, err := sim.RunSingleDay(sim.DefaultConfig(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTraceSummary(&buf, trace.Summarize(dt)))

	out := buf.String()
	assert.Contains(t, out, sim.EventArrival.String())
	assert.Contains(t, out, sim.EventServiceEnd.String())
	assert.Contains(t, out, "Busy rows, Apprentice")
}

func TestFormatDraws(t *testing.T) {
	assert.Equal(t, "-", formatDraws(nil))
	assert.Equal(t, "arrival=0.2500 service=0.5000",
		formatDraws([]trace.Draw{{Name: "arrival", Random: 0.25, Value: 4.5}, {Name: "service", Random: 0.5, Value: 12}}))
}
