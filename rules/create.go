package rules

import (
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
)

const (
	maxNameLength     = 100
	maxCurrencyLength = 3

	minMonthlyFeeInterval = 1
	maxMonthlyFeeInterval = 12
)

// ValidateForCreate checks a full charge definition. It returns nil, a
// *validation.Failure listing every structural problem, a
// *validation.DomainRuleError for a min/max policy violation, or an input
// shape error for an empty or out-of-schema payload.
func (v *Validator) ValidateForCreate(in fields.Extractor) error {
	if err := checkSchema(in); err != nil {
		return err
	}
	p := newPayload(in, true)

	appliesTo := p.int(ParamAppliesTo)
	p.check(ParamAppliesTo, appliesTo).NotNull().IsOneOf(charge.ApplicabilityValues())

	method := p.int(ParamCalculationType)
	p.check(ParamCalculationType, method).NotNull()

	feeInterval := p.int(ParamFeeInterval)
	p.check(ParamFeeInterval, feeInterval).IntegerGreaterThanZero()

	feeFrequency := p.int(ParamFeeFrequency)
	p.check(ParamFeeFrequency, feeFrequency).InRange(charge.MinFeeFrequency, charge.MaxFeeFrequency)

	p.validateFreeWithdrawal()
	p.validatePaymentType()

	if feeFrequency != nil {
		p.check(ParamFeeInterval, feeInterval).NotNull()
	}

	p.validateApplicability(applicabilityOf(appliesTo))

	name := p.string(ParamName)
	p.check(ParamName, name).NotBlank().NotExceedingLengthOf(maxNameLength)

	currency := p.string(ParamCurrencyCode)
	p.check(ParamCurrencyCode, currency).NotBlank().NotExceedingLengthOf(maxCurrencyLength)

	if !p.exists(ParamChart) {
		amount := p.decimal(ParamAmount)
		p.check(ParamAmount, amount).NotNull().PositiveAmount()
	}

	p.validateFlagsAndCaps()

	if p.exists(ParamTaxGroupID) {
		taxGroup := p.long(ParamTaxGroupID)
		p.check(ParamTaxGroupID, taxGroup).NotNull().LongGreaterThanZero()
	}

	if err := p.validateMinMax(applicabilityOf(appliesTo)); err != nil {
		return err
	}
	return p.errs.Err()
}

// =============================================================================
// SETTINGS BLOCKS - Shared by create and update
// =============================================================================

// validateFreeWithdrawal checks the free withdrawal allowance. Frequencies
// only matter once the allowance is switched on.
func (p *payload) validateFreeWithdrawal() {
	if !p.exists(ParamEnableFreeWithdrawal) {
		return
	}
	enabled := p.bool(ParamEnableFreeWithdrawal)
	p.check(ParamEnableFreeWithdrawal, enabled).NotNull()
	if enabled == nil || !*enabled {
		return
	}

	frequency := p.int(ParamFreeWithdrawalFrequency)
	p.check(ParamFreeWithdrawalFrequency, frequency).IntegerGreaterThanZero()

	restart := p.int(ParamRestartCountFrequency)
	p.check(ParamRestartCountFrequency, restart).IntegerGreaterThanZero()

	// Any frequency type is accepted; reading it still reports a malformed value.
	p.int(ParamCountFrequencyType)
}

// validatePaymentType checks the payment type restriction.
func (p *payload) validatePaymentType() {
	if !p.exists(ParamEnablePaymentType) {
		return
	}
	enabled := p.bool(ParamEnablePaymentType)
	p.check(ParamEnablePaymentType, enabled).NotNull()
	if enabled == nil || !*enabled {
		return
	}
	paymentType := p.int(ParamPaymentTypeID)
	p.check(ParamPaymentTypeID, paymentType).IntegerGreaterThanZero()
}

// validateFlagsAndCaps checks the optional penalty and active flags and the
// percentage caps. Present fields must carry a value.
func (p *payload) validateFlagsAndCaps() {
	for _, name := range []string{ParamPenalty, ParamActive} {
		if p.exists(name) {
			p.check(name, p.bool(name)).NotNull()
		}
	}
	for _, name := range []string{ParamMinCap, ParamMaxCap} {
		if p.exists(name) {
			p.check(name, p.decimal(name)).NotNull().PositiveAmount()
		}
	}
}

// =============================================================================
// APPLICABILITY BRANCHES
// =============================================================================

// validateApplicability runs the checks specific to what the charge applies
// to. On update it only looks at present fields. It reports whether the
// branch took ownership of feeOnMonthDay.
func (p *payload) validateApplicability(a charge.Applicability) (ownsMonthDay bool) {
	switch {
	case a.IsLoan():
		p.validateLoan()
	case a.IsSavings():
		return p.validateSavings()
	case a.IsClient():
		p.validateClient()
	case a.IsShare():
		p.validateShare()
	}
	return false
}

// timing reads and checks chargeTimeType against the timings legal for a.
func (p *payload) timing(a charge.Applicability) *int {
	if !p.wants(ParamTimeType) {
		return nil
	}
	timing := p.int(ParamTimeType)
	p.check(ParamTimeType, timing).NotNull().IsOneOf(charge.Codes(charge.TimingsFor(a)))
	return timing
}

// method checks chargeCalculationType against the methods legal for a. The
// mandatory check already ran before the branch.
func (p *payload) method(a charge.Applicability) *int {
	method := p.int(ParamCalculationType)
	p.check(ParamCalculationType, method).IsOneOf(charge.Codes(charge.MethodsFor(a)))
	return method
}

func (p *payload) validateLoan() {
	timing := p.timing(charge.AppliesToLoan)

	if p.wants(ParamPaymentMode) {
		mode := p.int(ParamPaymentMode)
		p.check(ParamPaymentMode, mode).NotNull().IsOneOf(charge.PaymentModeValues())
	}

	method := p.method(charge.AppliesToLoan)

	if timing != nil && method != nil {
		crossCheck(p.errs, *timing, *method)
	}
}

func (p *payload) validateSavings() (ownsMonthDay bool) {
	timing := p.timing(charge.AppliesToSavings)
	t := timingOf(timing)

	switch {
	case t.IsWeeklyFee():
		p.check(ParamFeeOnMonthDay, p.anyValue(ParamFeeOnMonthDay)).
			MustBeBlankWhenParameterProvidedIs(ParamTimeType, t.Value())
		ownsMonthDay = true
	case t.IsMonthlyFee():
		if p.wants(ParamFeeOnMonthDay) {
			p.check(ParamFeeOnMonthDay, p.monthDay(ParamFeeOnMonthDay)).NotNull()
		}
		if p.wants(ParamFeeInterval) {
			p.check(ParamFeeInterval, p.int(ParamFeeInterval)).NotNull().
				InRange(minMonthlyFeeInterval, maxMonthlyFeeInterval)
		}
		ownsMonthDay = true
	case t.IsAnnualFee():
		if p.wants(ParamFeeOnMonthDay) {
			p.check(ParamFeeOnMonthDay, p.monthDay(ParamFeeOnMonthDay)).NotNull()
		}
		ownsMonthDay = true
	}

	p.method(charge.AppliesToSavings)
	return ownsMonthDay
}

func (p *payload) validateClient() {
	p.timing(charge.AppliesToClient)
	p.method(charge.AppliesToClient)

	// GL accounts are passed through untouched, only the id shape is checked.
	if p.exists(ParamGLAccountID) {
		p.check(ParamGLAccountID, p.long(ParamGLAccountID)).NotNull().LongGreaterThanZero()
	}
}

func (p *payload) validateShare() {
	timing := p.timing(charge.AppliesToShare)
	method := p.method(charge.AppliesToShare)

	if timingOf(timing).IsShareAccountActivation() && method != nil {
		p.check(ParamCalculationType, method).
			IsOneOf(charge.Codes(charge.ShareAccountActivationMethods()))
	}
}
