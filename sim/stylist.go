package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StylistKind is one of the three fixed skill tiers.
// The declaration order is the order the assignment policy tests them in.
type StylistKind int

const (
	Apprentice StylistKind = iota
	VeteranA
	VeteranB
)

// StylistKinds lists every tier in assignment order.
var StylistKinds = [...]StylistKind{Apprentice, VeteranA, VeteranB}

func (k StylistKind) String() string {
	switch k {
	case Apprentice:
		return "Apprentice"
	case VeteranA:
		return "Veteran A"
	case VeteranB:
		return "Veteran B"
	default:
		return fmt.Sprintf("StylistKind(%d)", int(k))
	}
}

// key is the YAML section name of the tier.
func (k StylistKind) key() string {
	switch k {
	case Apprentice:
		return "apprentice"
	case VeteranA:
		return "veteran_a"
	case VeteranB:
		return "veteran_b"
	default:
		return fmt.Sprintf("stylist_%d", int(k))
	}
}

// StylistState is Free or Busy.
type StylistState int

const (
	Free StylistState = iota
	Busy
)

func (s StylistState) String() string {
	switch s {
	case Free:
		return "Free"
	case Busy:
		return "Busy"
	default:
		return fmt.Sprintf("StylistState(%d)", int(s))
	}
}

// Stylist is created once from the configuration and reset at the start of
// every simulated day. CurrentCustomer is an identifier into the day's
// customer table, never an owning reference.
type Stylist struct {
	Kind        StylistKind
	Probability float64
	Service     Range
	Fee         decimal.Decimal

	State           StylistState
	CurrentCustomer CustomerID // NoCustomer when Free
	CompletionTime  float64    // 0 when Free
}

func newStylists(cfg Config) []*Stylist {
	stylists := make([]*Stylist, 0, len(StylistKinds))
	for _, kind := range StylistKinds {
		sc := cfg.Stylist(kind)
		stylists = append(stylists, &Stylist{
			Kind:        kind,
			Probability: sc.Probability,
			Service:     sc.Service,
			Fee:         sc.Fee,
		})
	}
	return stylists
}

// Reset returns the stylist to Free with no customer.
func (s *Stylist) Reset() {
	s.State = Free
	s.CurrentCustomer = NoCustomer
	s.CompletionTime = 0
}

func (s *Stylist) assign(id CustomerID, completion float64) {
	if s.State == Busy {
		panic(fmt.Sprintf("%s assigned C%d while busy with C%d", s.Kind, id, s.CurrentCustomer))
	}
	s.State = Busy
	s.CurrentCustomer = id
	s.CompletionTime = completion
}
