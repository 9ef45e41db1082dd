package rules

import (
	"cmp"
	"slices"

	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
)

// Rate chart error codes, scoped to the resource only. Overlap and gap errors
// carry the adjacent ranges as args (cur.from, cur.to, next.from, next.to) in
// sorted order; an open end is nil. End errors carry the offending to.
const (
	codeSlabOverlapping  = "chart.slabs.range.overlapping"
	codeSlabGap          = "chart.slabs.range.has.gap"
	codeSlabEndIncorrect = "chart.slabs.range.end.incorrect"
)

// ValidateSlabSet checks that a rate chart covers its periods exactly once
// and ends with an open-ended slab. Slabs are sorted by FromPeriod first, so
// every overlap and gap shows up between neighbours. The input is not
// modified.
func (v *Validator) ValidateSlabSet(slabs []charge.Slab) error {
	sorted := slices.Clone(slabs)
	slices.SortStableFunc(sorted, compareByFrom)

	errs := validation.NewCollector(Resource)
	for i, cur := range sorted {
		if !cur.IsValid() {
			errs.Parameter(ParamFromPeriod).FailWithCode("cannot.be.blank")
		}

		if i+1 < len(sorted) {
			next := sorted[i+1]
			if !cur.IsValid() || !next.IsValid() {
				continue
			}
			if cur.Overlaps(next) {
				errs.Parameter(ParamChart).FailWithCodeNoParameterAddedToErrorCode(codeSlabOverlapping,
					cur.From(), cur.To(), next.From(), next.To())
			} else if cur.HasGap(next) {
				errs.Parameter(ParamChart).FailWithCodeNoParameterAddedToErrorCode(codeSlabGap,
					cur.From(), cur.To(), next.From(), next.To())
			}
		} else if cur.IsNotProperEnd() {
			errs.Parameter(ParamChart).FailWithCodeNoParameterAddedToErrorCode(codeSlabEndIncorrect, cur.To())
		}
	}
	return errs.Err()
}

// compareByFrom orders slabs by lower bound; slabs without one sort first.
func compareByFrom(a, b charge.Slab) int {
	switch {
	case !a.IsValid() && !b.IsValid():
		return 0
	case !a.IsValid():
		return -1
	case !b.IsValid():
		return 1
	}
	return cmp.Compare(*a.FromPeriod, *b.FromPeriod)
}
