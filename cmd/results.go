package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/salon-sim/salon-sim/sim"
)

// resultsDocument is the --results-file layout: the aggregate plus what is
// needed to reproduce it.
type resultsDocument struct {
	RunID     uuid.UUID           `yaml:"run_id"`
	CreatedAt time.Time           `yaml:"created_at"`
	Seed      int64               `yaml:"seed"`
	Workers   int                 `yaml:"workers"`
	Config    sim.Config          `yaml:"config"`
	Results   *sim.AggregateStats `yaml:"results"`
}

func newResultsDocument(cfg sim.Config, opts sim.RunOptions, agg *sim.AggregateStats) resultsDocument {
	return resultsDocument{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Seed:      opts.Seed,
		Workers:   max(opts.Workers, 1),
		Config:    cfg,
		Results:   agg,
	}
}

// saveResults writes doc as YAML to path.
func saveResults(path string, doc resultsDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}
