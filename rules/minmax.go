package rules

import (
	"fmt"

	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
)

// Domain rule codes.
const (
	CodeMinMaxNotSupported = "error.msg.charge.min.max.amount.not.supported"
	CodeMinExceedsMax      = "error.msg.charge.min.amount.greater.than.max.amount"
)

// AllowsMinMaxAmount reports whether a charge with these settings may carry
// minimum and maximum amounts: percent-of-amount withdrawal fees on savings,
// and any non-flat loan charge not tied to a specified due date.
func AllowsMinMaxAmount(a charge.Applicability, t charge.Timing, m charge.CalculationMethod) bool {
	switch {
	case a.IsSavings():
		return m.IsPercentOfAmount() && t.IsWithdrawalFee()
	case a.IsLoan():
		return !t.IsOnSpecifiedDueDate() && !m.IsFlat()
	}
	return false
}

// validateMinMax applies the min/max amount policy once both bounds are
// given. Violations are returned as a *validation.DomainRuleError and end
// the call; structural errors found so far are dropped.
func (p *payload) validateMinMax(a charge.Applicability) error {
	minAmount := p.decimal(ParamMinAmount)
	maxAmount := p.decimal(ParamMaxAmount)
	if minAmount == nil || maxAmount == nil {
		return nil
	}

	if !a.SupportsMinMaxAmount() {
		return validation.NewDomainRuleError(validation.ErrMinMaxNotSupported, CodeMinMaxNotSupported,
			"Minimum and maximum amount is only supported on loan and savings charges")
	}

	timing := p.int(ParamTimeType)
	if timing == nil {
		// Create already requires the timing in the loan and savings branches.
		if !p.create {
			p.check(ParamTimeType, timing).NotNull()
		}
		return nil
	}

	t := timingOf(timing)
	m := methodOf(p.int(ParamCalculationType))
	if !AllowsMinMaxAmount(a, t, m) {
		return validation.NewDomainRuleError(validation.ErrMinMaxNotSupported, CodeMinMaxNotSupported,
			fmt.Sprintf("Minimum and maximum amount is not supported with given settings of "+
				"[applies to: %s, charge time type: %s, charge calculation type: %s]", a, t, m),
			a.String(), t.String(), m.String())
	}

	if maxAmount.LessThan(*minAmount) {
		return validation.NewDomainRuleError(validation.ErrMinExceedsMax, CodeMinExceedsMax,
			fmt.Sprintf("Minimum amount [ %s ] can not be greater than maximum amount [ %s ]", minAmount, maxAmount),
			minAmount.String(), maxAmount.String())
	}
	return nil
}
