// Package trace holds the state-vector rows of a simulated day.
// This package has no dependencies on sim/: it stores pure data types.
package trace

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Draw is one uniform random value consumed while producing a row.
// Value is the quantity derived from it (minutes) and zero for
// categorical draws such as stylist assignment.
type Draw struct {
	Name   string  `yaml:"name"`
	Random float64 `yaml:"random"`
	Value  float64 `yaml:"value,omitempty"`
}

// StylistSnapshot is one stylist's state as of a row.
type StylistSnapshot struct {
	Kind           string  `yaml:"kind"`
	State          string  `yaml:"state"`
	Customer       int     `yaml:"customer"`        // 0 when free
	Waiting        int     `yaml:"waiting"`         // pool members assigned to this stylist
	NextEnd        float64 `yaml:"next_end"`        // earliest pending service end, 0 if none
	CompletionTime float64 `yaml:"completion_time"` // 0 when free
}

// StateRow captures the simulation state right after one dispatched event.
// Rows are never modified once recorded.
type StateRow struct {
	Iteration   int     `yaml:"iteration"`
	Clock       float64 `yaml:"clock"`
	Kind        string  `yaml:"kind"`
	Event       string  `yaml:"event"`
	Draws       []Draw  `yaml:"draws,omitempty"`
	NextArrival float64 `yaml:"next_arrival"` // 0 once arrivals are exhausted

	Stylists []StylistSnapshot `yaml:"stylists"`

	Served     int             `yaml:"served"`
	Revenue    decimal.Decimal `yaml:"revenue"`
	SnackCost  decimal.Decimal `yaml:"snack_cost"`
	SnackCount int             `yaml:"snack_count"`
	MaxQueue   int             `yaml:"max_queue"`
}

// CustomerLabel renders a customer reference the way reports show it: "C7", or "-" for none.
func CustomerLabel(id int) string {
	if id <= 0 {
		return "-"
	}
	return fmt.Sprintf("C%d", id)
}
