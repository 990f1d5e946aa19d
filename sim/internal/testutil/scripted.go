// Package testutil provides shared test infrastructure for the shop simulator:
// a scripted random source for exact replay and float assertion helpers.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// ScriptedSource returns a fixed sequence of draws, in order.
// It panics when the script runs out so a test never silently draws past it.
type ScriptedSource struct {
	values []float64
	pos    int
}

// NewScriptedSource creates a source yielding values in order.
func NewScriptedSource(values ...float64) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Float64 returns the next scripted value.
func (s *ScriptedSource) Float64() float64 {
	if s.pos >= len(s.values) {
		panic(fmt.Sprintf("scripted source exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

// Drawn returns how many values have been consumed.
func (s *ScriptedSource) Drawn() int {
	return s.pos
}

// Remaining returns how many values are left.
func (s *ScriptedSource) Remaining() int {
	return len(s.values) - s.pos
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
