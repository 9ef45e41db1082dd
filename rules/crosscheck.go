package rules

import (
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
)

// ValidateTimingAndCalculationMethod checks that a calculation method can be
// paired with a timing. Share account activation and tranche disbursement
// restrict the method to their own subsets; every other timing rejects
// percent-of-disbursement, which only tranche disbursement may use.
func (v *Validator) ValidateTimingAndCalculationMethod(t charge.Timing, m charge.CalculationMethod) error {
	errs := validation.NewCollector(Resource)
	crossCheck(errs, t.Value(), m.Value())
	return errs.Err()
}

func crossCheck(errs *validation.Collector, timing, method int) {
	t := charge.TimingOf(timing)

	if allowed, restricted := charge.MethodsForTiming(t); restricted {
		errs.Parameter(ParamCalculationType).Value(method).IsOneOf(charge.Codes(allowed))
	}
	if !t.IsTrancheDisbursement() {
		errs.Parameter(ParamCalculationType).Value(method).IsNotOneOf(charge.PercentOfDisbursement.Value())
	}
}
