package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/salon-sim/salon-sim/sim"
	"github.com/salon-sim/salon-sim/sim/trace"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeAggregateReport prints the multi-day summary, and one line per day when daily is set.
func writeAggregateReport(w io.Writer, agg *sim.AggregateStats, daily bool) error {
	fmt.Fprintf(w, "=== Shop Summary (%d days) ===\n", agg.Days)
	tw := newTable(w)
	fmt.Fprintf(tw, "Mean revenue\t%s\n", agg.MeanRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Revenue range\t%s .. %s\n", agg.MinRevenue.StringFixed(2), agg.MaxRevenue.StringFixed(2))
	fmt.Fprintf(tw, "Mean net profit\t%s\n", agg.MeanNetProfit.StringFixed(2))
	fmt.Fprintf(tw, "Chairs needed (max)\t%d\n", agg.MaxChairs)
	fmt.Fprintf(tw, "Chairs needed (mean)\t%.2f\n", agg.MeanChairs)
	fmt.Fprintf(tw, "Mean snacks per day\t%.2f\n", agg.MeanSnacks)
	fmt.Fprintf(tw, "P(snacks >= %d)\t%.4f (%d days)\n", agg.SnackAlertThreshold, agg.SnackAlertProb, agg.SnackAlertDays)
	if agg.TruncatedDays > 0 {
		fmt.Fprintf(tw, "Truncated days\t%d\n", agg.TruncatedDays)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !daily {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Daily Results ===")
	tw = newTable(w)
	fmt.Fprintln(tw, "Day\tServed\tRevenue\tSnacks\tSnack cost\tNet profit\tMax queue\tEnd clock\t")
	for i, d := range agg.Daily {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%s\t%d\t%.2f\t\n",
			i+1, d.CustomersServed, d.Revenue.StringFixed(2), d.SnackCount,
			d.SnackCost.StringFixed(2), d.NetProfit.StringFixed(2), d.MaxQueueLength, d.FinalClock)
	}
	return tw.Flush()
}

// writeDayReport prints the statistics of one day.
func writeDayReport(w io.Writer, stats sim.DayStats) error {
	fmt.Fprintln(w, "=== Day Results ===")
	tw := newTable(w)
	fmt.Fprintf(tw, "Customers served\t%d\n", stats.CustomersServed)
	fmt.Fprintf(tw, "Revenue\t%s\n", stats.Revenue.StringFixed(2))
	fmt.Fprintf(tw, "Snacks\t%d (%s)\n", stats.SnackCount, stats.SnackCost.StringFixed(2))
	fmt.Fprintf(tw, "Net profit\t%s\n", stats.NetProfit.StringFixed(2))
	fmt.Fprintf(tw, "Max queue\t%d\n", stats.MaxQueueLength)
	fmt.Fprintf(tw, "Iterations\t%d\n", stats.Iterations)
	fmt.Fprintf(tw, "End clock\t%.2f\n", stats.FinalClock)
	if stats.Truncated {
		fmt.Fprintf(tw, "Truncated\tyes\n")
	}
	return tw.Flush()
}

// writeStateRows prints the state vector, one line per row.
func writeStateRows(w io.Writer, rows []trace.StateRow) error {
	tw := newTable(w)
	header := []string{"It", "Clock", "Event", "Draws", "Next arr"}
	for _, kind := range sim.StylistKinds {
		header = append(header, kind.String(), "Cust", "Wait", "Ends")
	}
	header = append(header, "Served", "Revenue", "Snacks", "Snack cost", "Max queue")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, r := range rows {
		cols := []string{
			fmt.Sprintf("%d", r.Iteration),
			fmt.Sprintf("%.2f", r.Clock),
			r.Event,
			formatDraws(r.Draws),
			formatMinutes(r.NextArrival),
		}
		for _, st := range r.Stylists {
			cols = append(cols, st.State, trace.CustomerLabel(st.Customer),
				fmt.Sprintf("%d", st.Waiting), formatMinutes(st.NextEnd))
		}
		cols = append(cols,
			fmt.Sprintf("%d", r.Served),
			r.Revenue.StringFixed(2),
			fmt.Sprintf("%d", r.SnackCount),
			r.SnackCost.StringFixed(2),
			fmt.Sprintf("%d", r.MaxQueue))
		fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
	}
	return tw.Flush()
}

// writeTraceSummary prints the per-kind event counts and occupancy of a day's rows.
func writeTraceSummary(w io.Writer, s *trace.TraceSummary) error {
	fmt.Fprintln(w, "=== Trace Summary ===")
	tw := newTable(w)
	fmt.Fprintf(tw, "Rows\t%d\n", s.TotalRows)
	kinds := make([]string, 0, len(s.EventCounts))
	for k := range s.EventCounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(tw, "  %s\t%d\n", k, s.EventCounts[k])
	}
	for _, kind := range sim.StylistKinds {
		fmt.Fprintf(tw, "Busy rows, %s\t%d\n", kind, s.BusyRows[kind.String()])
	}
	fmt.Fprintf(tw, "Peak waiting\t%d (clock %.2f)\n", s.PeakWaiting, s.PeakWaitingAt)
	fmt.Fprintf(tw, "Draws consumed\t%d\n", s.DrawsConsumed)
	return tw.Flush()
}

func formatDraws(draws []trace.Draw) string {
	if len(draws) == 0 {
		return "-"
	}
	parts := make([]string, len(draws))
	for i, d := range draws {
		parts[i] = fmt.Sprintf("%s=%.4f", d.Name, d.Random)
	}
	return strings.Join(parts, " ")
}

func formatMinutes(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
