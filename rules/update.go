package rules

import (
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
)

const (
	minPaymentMode = 0
	maxPaymentMode = 1
)

// ValidateForUpdate checks a partial charge definition. Only fields present in
// the payload are checked, and a present field may not be null. Without
// chargeAppliesTo the stored applicability is unknown here, so timing and
// method are only checked against everything any applicability accepts.
func (v *Validator) ValidateForUpdate(in fields.Extractor) error {
	if err := checkSchema(in); err != nil {
		return err
	}
	p := newPayload(in, false)

	if p.exists(ParamName) {
		p.check(ParamName, p.string(ParamName)).NotBlank().NotExceedingLengthOf(maxNameLength)
	}
	if p.exists(ParamCurrencyCode) {
		p.check(ParamCurrencyCode, p.string(ParamCurrencyCode)).NotBlank().NotExceedingLengthOf(maxCurrencyLength)
	}
	if p.exists(ParamAmount) {
		p.check(ParamAmount, p.decimal(ParamAmount)).NotNull().PositiveAmount()
	}

	var appliesTo *int
	if p.exists(ParamAppliesTo) {
		appliesTo = p.int(ParamAppliesTo)
		p.check(ParamAppliesTo, appliesTo).NotNull().IsOneOf(charge.ApplicabilityValues())
	}

	p.validateFreeWithdrawal()
	p.validatePaymentType()

	if p.exists(ParamCalculationType) {
		p.check(ParamCalculationType, p.int(ParamCalculationType)).NotNull()
	}

	a := applicabilityOf(appliesTo)
	ownsMonthDay := false
	if a.IsValid() {
		ownsMonthDay = p.validateApplicability(a)
	} else {
		p.validateWithoutApplicability()
	}

	if p.exists(ParamFeeOnMonthDay) && !ownsMonthDay {
		p.check(ParamFeeOnMonthDay, p.monthDay(ParamFeeOnMonthDay)).NotNull()
	}
	if p.exists(ParamFeeInterval) {
		p.check(ParamFeeInterval, p.int(ParamFeeInterval)).IntegerGreaterThanZero()
	}

	p.validateFlagsAndCaps()

	if p.exists(ParamFeeFrequency) {
		p.check(ParamFeeFrequency, p.int(ParamFeeFrequency)).
			InRange(charge.MinFeeFrequency, charge.MaxFeeFrequency)
	}
	if p.exists(ParamGLAccountID) && !a.IsClient() {
		p.check(ParamGLAccountID, p.long(ParamGLAccountID)).NotNull().LongGreaterThanZero()
	}
	if p.exists(ParamTaxGroupID) {
		p.check(ParamTaxGroupID, p.long(ParamTaxGroupID)).NotNull().LongGreaterThanZero()
	}

	if err := p.validateMinMax(a); err != nil {
		return err
	}
	return p.errs.Err()
}

// validateWithoutApplicability applies the loose checks used when the
// payload does not say what the charge applies to.
func (p *payload) validateWithoutApplicability() {
	if p.exists(ParamTimeType) {
		p.check(ParamTimeType, p.int(ParamTimeType)).NotNull().IsOneOf(charge.TimingValues())
	}
	if p.exists(ParamCalculationType) {
		p.check(ParamCalculationType, p.int(ParamCalculationType)).
			InRange(charge.Flat.Value(), charge.PercentOfDisbursement.Value())
	}
	if p.exists(ParamPaymentMode) {
		p.check(ParamPaymentMode, p.int(ParamPaymentMode)).NotNull().InRange(minPaymentMode, maxPaymentMode)
	}
}
