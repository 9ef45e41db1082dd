package charge

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SLAB - One tier of a charge rate chart
// =============================================================================

// Slab is one range of a rate chart. Periods are counts (days, installments)
// and the range is half-open: [FromPeriod, ToPeriod). A nil ToPeriod marks the
// open-ended terminal slab, which is the only proper way for a chart to end.
//
// Examples:
//   - {0, 10}   covers periods 0..9
//   - {10, nil} covers period 10 and everything after it
type Slab struct {
	FromPeriod *int
	ToPeriod   *int
	Amount     decimal.Decimal
}

// NewSlab builds a closed slab [from, to).
func NewSlab(from, to int, amount decimal.Decimal) Slab {
	return Slab{FromPeriod: &from, ToPeriod: &to, Amount: amount}
}

// OpenSlab builds the open-ended terminal slab [from, ∞).
func OpenSlab(from int, amount decimal.Decimal) Slab {
	return Slab{FromPeriod: &from, Amount: amount}
}

// IsValid reports whether the slab has a lower bound. Slabs without one are
// excluded from neighbour comparisons.
func (s Slab) IsValid() bool {
	return s.FromPeriod != nil
}

// IsOpenEnded reports whether the slab has no upper bound.
func (s Slab) IsOpenEnded() bool {
	return s.ToPeriod == nil
}

// Overlaps reports whether next starts before this slab ends. An open-ended
// slab overlaps anything that follows it. Both slabs must be valid and next
// must not start before this slab.
func (s Slab) Overlaps(next Slab) bool {
	if s.IsOpenEnded() {
		return true
	}
	return *next.FromPeriod < *s.ToPeriod
}

// HasGap reports whether periods between this slab's end and next's start are
// covered by neither.
func (s Slab) HasGap(next Slab) bool {
	if s.IsOpenEnded() {
		return false
	}
	return *next.FromPeriod > *s.ToPeriod
}

// IsNotProperEnd reports whether this slab, taken as the last of a chart,
// fails to close the chart with the open-ended terminus.
func (s Slab) IsNotProperEnd() bool {
	return !s.IsOpenEnded()
}

// Contains returns true if the period falls inside [FromPeriod, ToPeriod).
func (s Slab) Contains(period int) bool {
	if !s.IsValid() || period < *s.FromPeriod {
		return false
	}
	return s.IsOpenEnded() || period < *s.ToPeriod
}

// From returns the lower bound or nil, for message arguments.
func (s Slab) From() any { return boundArg(s.FromPeriod) }

// To returns the upper bound or nil, for message arguments.
func (s Slab) To() any { return boundArg(s.ToPeriod) }

// String returns a string representation of the slab range.
func (s Slab) String() string {
	return "[" + boundString(s.FromPeriod, "?") + ", " + boundString(s.ToPeriod, "∞") + ")"
}

// GoString includes the amount, for test failure output.
func (s Slab) GoString() string {
	return fmt.Sprintf("Slab%s@%s", s.String(), s.Amount)
}

func boundArg(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func boundString(p *int, missing string) string {
	if p == nil {
		return missing
	}
	return strconv.Itoa(*p)
}
