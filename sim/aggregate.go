package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/salon-sim/salon-sim/sim/trace"
)

// ErrInvalidDays is returned when a multi-day run is asked for fewer than one day.
var ErrInvalidDays = errors.New("number of days must be positive")

// AggregateStats reduces many independent days to summary statistics.
type AggregateStats struct {
	Days          int             `yaml:"days"`
	MeanRevenue   decimal.Decimal `yaml:"mean_revenue"`
	MinRevenue    decimal.Decimal `yaml:"min_revenue"`
	MaxRevenue    decimal.Decimal `yaml:"max_revenue"`
	MeanNetProfit decimal.Decimal `yaml:"mean_net_profit"`

	// Chairs needed: the concurrent waiting-pool length across days.
	MaxChairs  int     `yaml:"max_chairs"`
	MeanChairs float64 `yaml:"mean_chairs"`

	MeanSnacks          float64 `yaml:"mean_snacks"`
	SnackAlertThreshold int     `yaml:"snack_alert_threshold"`
	SnackAlertDays      int     `yaml:"snack_alert_days"`        // days with SnackCount >= SnackAlertThreshold
	SnackAlertProb      float64 `yaml:"snack_alert_probability"` // SnackAlertDays / Days

	TruncatedDays int        `yaml:"truncated_days"`
	Daily         []DayStats `yaml:"daily"`

	// LastDay holds the state rows of the final simulated day.
	LastDay *trace.DayTrace `yaml:"-"`
}

// Aggregate folds per-day statistics into an AggregateStats.
// Safe for empty input (returns zero-value fields).
func Aggregate(daily []DayStats, snackAlertThreshold int) *AggregateStats {
	agg := &AggregateStats{
		Days:                len(daily),
		SnackAlertThreshold: snackAlertThreshold,
		Daily:               daily,
	}
	if len(daily) == 0 {
		return agg
	}

	revenues := make([]decimal.Decimal, len(daily))
	profits := make([]decimal.Decimal, len(daily))
	chairs := make([]float64, len(daily))
	snacks := make([]float64, len(daily))
	for i, d := range daily {
		revenues[i] = d.Revenue
		profits[i] = d.NetProfit
		chairs[i] = float64(d.MaxQueueLength)
		snacks[i] = float64(d.SnackCount)
		if d.SnackCount >= snackAlertThreshold {
			agg.SnackAlertDays++
		}
		if d.Truncated {
			agg.TruncatedDays++
		}
	}

	agg.MeanRevenue = decimal.Avg(revenues[0], revenues[1:]...)
	agg.MinRevenue = decimal.Min(revenues[0], revenues[1:]...)
	agg.MaxRevenue = decimal.Max(revenues[0], revenues[1:]...)
	agg.MeanNetProfit = decimal.Avg(profits[0], profits[1:]...)
	agg.MaxChairs = int(floats.Max(chairs))
	agg.MeanChairs = stat.Mean(chairs, nil)
	agg.MeanSnacks = stat.Mean(snacks, nil)
	agg.SnackAlertProb = float64(agg.SnackAlertDays) / float64(len(daily))
	return agg
}

// RunOptions controls a multi-day run.
type RunOptions struct {
	// Seed keys the random streams when Source is nil.
	Seed int64
	// Source, when set, is the single stream all days draw from in order.
	// Only used with Workers <= 1.
	Source RandomSource
	// Workers > 1 runs days concurrently. Each day then draws from its own
	// stream derived from Seed, so results do not depend on scheduling.
	Workers int
	// OnDay, if set, is called after each day completes. Calls are serialized.
	OnDay func(day, total int, stats DayStats)
}

// RunMultipleDays simulates n independent days and aggregates them.
// ctx is checked between days; a cancelled run returns ctx's error.
func RunMultipleDays(ctx context.Context, cfg Config, n int, opts RunOptions) (*AggregateStats, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidDays, n)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Infof("Simulating %d days (workers=%d, seed=%d)", n, max(opts.Workers, 1), opts.Seed)

	var (
		daily []DayStats
		last  *trace.DayTrace
		err   error
	)
	if opts.Workers > 1 {
		daily, last, err = runParallel(ctx, cfg, n, opts)
	} else {
		daily, last, err = runSequential(ctx, cfg, n, opts)
	}
	if err != nil {
		return nil, err
	}

	agg := Aggregate(daily, cfg.SnackAlertThreshold)
	agg.LastDay = last
	if agg.TruncatedDays > 0 {
		logrus.Warnf("%d of %d days hit the iteration cap", agg.TruncatedDays, n)
	}
	logrus.Infof("Simulated %d days: mean revenue %s, max chairs %d", n, agg.MeanRevenue.StringFixed(2), agg.MaxChairs)
	return agg, nil
}

// runSequential reuses one controller, so stylist definitions persist
// across days while every other piece of state is reset.
func runSequential(ctx context.Context, cfg Config, n int, opts RunOptions) ([]DayStats, *trace.DayTrace, error) {
	src := opts.Source
	if src == nil {
		src = rand.New(rand.NewSource(opts.Seed))
	}
	ds, err := NewDaySimulator(cfg, src)
	if err != nil {
		return nil, nil, err
	}

	daily := make([]DayStats, 0, n)
	for day := 1; day <= n; day++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("stopped before day %d: %w", day, err)
		}
		stats := ds.Run()
		daily = append(daily, stats)
		logrus.Debugf("Day %d/%d: revenue=%s snacks=%d max queue=%d", day, n, stats.Revenue, stats.SnackCount, stats.MaxQueueLength)
		if opts.OnDay != nil {
			opts.OnDay(day, n, stats)
		}
	}
	return daily, ds.Trace, nil
}

// runParallel gives every day its own controller and its own stream; no
// mutable state is shared between days.
func runParallel(ctx context.Context, cfg Config, n int, opts RunOptions) ([]DayStats, *trace.DayTrace, error) {
	// PartitionedRNG is not thread-safe: derive every stream up front.
	rngs := NewPartitionedRNG(NewSimulationKey(opts.Seed))
	streams := make([]*rand.Rand, n)
	for i := range streams {
		streams[i] = rngs.ForDay(i + 1)
	}

	daily := make([]DayStats, n)
	var (
		last *trace.DayTrace
		mu   sync.Mutex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("stopped before day %d: %w", i+1, err)
			}
			ds, err := NewDaySimulator(cfg, streams[i])
			if err != nil {
				return err
			}
			stats := ds.Run()
			daily[i] = stats

			mu.Lock()
			defer mu.Unlock()
			if i == n-1 {
				last = ds.Trace
			}
			if opts.OnDay != nil {
				opts.OnDay(i+1, n, stats)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return daily, last, nil
}

// RunSingleDay simulates one day drawing from rng and returns its statistics
// and state rows.
func RunSingleDay(cfg Config, rng RandomSource) (DayStats, *trace.DayTrace, error) {
	ds, err := NewDaySimulator(cfg, rng)
	if err != nil {
		return DayStats{}, nil, err
	}
	stats := ds.Run()
	return stats, ds.Trace, nil
}
