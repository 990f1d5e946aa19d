package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salon-sim/salon-sim/sim"
	"github.com/salon-sim/salon-sim/sim/trace"
)

var (
	// shared flags
	seed       int64  // Seed for the random stream(s)
	logLevel   string // Log verbosity level
	configFile string // Optional YAML shop configuration

	// configuration overrides, applied over the config file when set
	workday        float64 // Intake window in minutes
	maxSimTime     float64 // Hard clock limit in minutes
	maxIterations  int     // Dispatched events per day
	snackThreshold float64 // Wait in minutes before a snack is due
	snackCost      string  // Cost of one snack
	snackAlert     int     // Snack count that marks a bad day

	// run flags
	numDays     int    // Number of independent days
	workers     int    // Concurrent days; 1 runs sequentially on one stream
	showDaily   bool   // Print one line per day
	resultsPath string // File to save aggregate results to as YAML

	// day flags
	fromClock float64 // Print rows with clock >= this value
	rowLimit  int     // Max rows to print, 0 for all
	noRows    bool    // Skip the state vector
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "salon-sim",
	Short: "Discrete-event simulator for a three-stylist shop",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// runCmd simulates many days and reports aggregate statistics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate many days and report aggregate statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		opts := sim.RunOptions{
			Seed:    seed,
			Workers: workers,
			OnDay: func(day, total int, stats sim.DayStats) {
				logrus.Infof("Day %d/%d done: revenue %s, snacks %d", day, total, stats.Revenue.StringFixed(2), stats.SnackCount)
			},
		}
		agg, err := sim.RunMultipleDays(cmd.Context(), cfg, numDays, opts)
		if err != nil {
			return err
		}

		if err := writeAggregateReport(cmd.OutOrStdout(), agg, showDaily); err != nil {
			return err
		}
		if resultsPath != "" {
			doc := newResultsDocument(cfg, opts, agg)
			if err := saveResults(resultsPath, doc); err != nil {
				return err
			}
			logrus.Infof("Saved results of run %s to %s", doc.RunID, resultsPath)
		}
		return nil
	},
}

// dayCmd simulates one day and prints its state vector
var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Simulate one day and print its state vector",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		stats, dt, err := sim.RunSingleDay(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !noRows {
			if err := writeStateRows(out, dt.Select(fromClock, rowLimit)); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		if err := writeDayReport(out, stats); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return writeTraceSummary(out, trace.Summarize(dt))
	},
}

// defaultsCmd prints the built-in configuration, ready to edit and pass back with --config
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := marshalConfig(sim.DefaultConfig())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// resolveConfig builds the run configuration: defaults, then the config file,
// then any override flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configFile != "" {
		loaded, err := LoadConfigFile(configFile, cfg)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("workday") {
		cfg.Workday = workday
	}
	if flags.Changed("max-sim-time") {
		cfg.MaxSimTime = maxSimTime
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = maxIterations
	}
	if flags.Changed("snack-threshold") {
		cfg.SnackThreshold = snackThreshold
	}
	if flags.Changed("snack-cost") {
		cost, err := decimal.NewFromString(snackCost)
		if err != nil {
			return sim.Config{}, fmt.Errorf("invalid --snack-cost %q: %w", snackCost, err)
		}
		cfg.SnackCost = cost
	}
	if flags.Changed("snack-alert") {
		cfg.SnackAlertThreshold = snackAlert
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	logrus.Debugf("Resolved configuration: %+v", cfg)
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the random stream(s)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML shop configuration (print one with the defaults command)")

	// shop overrides
	rootCmd.PersistentFlags().Float64Var(&workday, "workday", 480, "Intake window in minutes")
	rootCmd.PersistentFlags().Float64Var(&maxSimTime, "max-sim-time", 960, "Hard clock limit in minutes")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 100000, "Max dispatched events per day")
	rootCmd.PersistentFlags().Float64Var(&snackThreshold, "snack-threshold", 30, "Wait in minutes before a snack is due")
	rootCmd.PersistentFlags().StringVar(&snackCost, "snack-cost", "5500", "Cost of one snack")
	rootCmd.PersistentFlags().IntVar(&snackAlert, "snack-alert", 5, "Snack count per day that counts as a bad day")

	runCmd.Flags().IntVar(&numDays, "days", 100, "Number of independent days to simulate")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Days simulated concurrently (1 = sequential, single stream)")
	runCmd.Flags().BoolVar(&showDaily, "daily", false, "Print one line per day")
	runCmd.Flags().StringVar(&resultsPath, "results-file", "", "File to save aggregate results to as YAML")

	dayCmd.Flags().Float64Var(&fromClock, "from", 0, "Print rows with clock at or after this minute")
	dayCmd.Flags().IntVar(&rowLimit, "rows", 0, "Max rows to print (0 = all); the final row is always shown")
	dayCmd.Flags().BoolVar(&noRows, "no-rows", false, "Skip the state vector")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(defaultsCmd)
}
