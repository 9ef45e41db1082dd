/*
Package factory turns validated charge payloads into charge.Definition values.

PURPOSE:
  The rule engine only answers "is this payload consistent?". The factory
  runs it and then assembles the typed definition the rest of the platform
  works with, so callers never read payload fields themselves.

OPERATIONS:
  Create           validate for create, check the rate chart, build a Definition
  ParseCreateJSON  Create from a raw JSON body
  Merge            validate for update, apply present fields to a copy of an
                   existing Definition, then re-check the merged result

JSON SCHEMA (create):
  {
    "name": "Withdrawal fee",
    "currencyCode": "USD",
    "chargeAppliesTo": 2,
    "chargeTimeType": 5,
    "chargeCalculationType": 2,
    "amount": 1.5,
    "minAmount": 1, "maxAmount": 10,
    "chart": {"chartSlabs": [{"fromPeriod": 0, "toPeriod": 30, "amount": 2},
                             {"fromPeriod": 30, "amount": 1}]}
  }

USAGE:
  f := factory.NewChargeFactory()
  def, err := f.ParseCreateJSON(body)
  if validation.IsClientError(err) {
      // report to the caller
  }

SEE ALSO:
  - rules/: the checks run before anything is assembled
  - charge/definition.go: the Definition carrier
*/
package factory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/rules"
	"github.com/warp/charge-engine/validation"
)

// Source is a payload that can also decode its rate chart.
type Source interface {
	fields.Extractor
	Slabs(name string) ([]charge.Slab, error)
}

// =============================================================================
// CHARGE FACTORY
// =============================================================================

// ChargeFactory builds charge definitions from payloads.
type ChargeFactory struct {
	validator *rules.Validator
}

// NewChargeFactory creates a new charge factory.
func NewChargeFactory() *ChargeFactory {
	return &ChargeFactory{validator: rules.New()}
}

// ParseCreateJSON parses and validates a create payload.
func (f *ChargeFactory) ParseCreateJSON(data []byte) (*charge.Definition, error) {
	in, err := fields.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return f.Create(in)
}

// Create validates a full payload and assembles its definition. A present
// rate chart must also pass the slab-set check.
func (f *ChargeFactory) Create(in Source) (*charge.Definition, error) {
	if in == nil {
		return nil, validation.ErrEmptyInput
	}
	if err := f.validator.ValidateForCreate(in); err != nil {
		return nil, err
	}

	def := &charge.Definition{}
	if err := apply(in, def); err != nil {
		return nil, err
	}
	if in.Exists(rules.ParamChart) {
		if err := f.validator.ValidateSlabSet(def.Slabs); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// Merge validates an update payload and applies it to a copy of existing.
// The merged definition is checked again as a whole, because an update can
// change the timing without the applicability (or the other way round).
func (f *ChargeFactory) Merge(existing charge.Definition, in Source) (*charge.Definition, error) {
	if in == nil {
		return nil, validation.ErrEmptyInput
	}
	if err := f.validator.ValidateForUpdate(in); err != nil {
		return nil, err
	}

	merged := existing
	merged.Slabs = append([]charge.Slab(nil), existing.Slabs...)
	if err := apply(in, &merged); err != nil {
		return nil, err
	}

	if err := f.checkMerged(merged); err != nil {
		return nil, err
	}
	if in.Exists(rules.ParamChart) {
		if err := f.validator.ValidateSlabSet(merged.Slabs); err != nil {
			return nil, err
		}
	}
	return &merged, nil
}

// checkMerged re-applies the cross-field rules to a merged definition.
func (f *ChargeFactory) checkMerged(d charge.Definition) error {
	errs := validation.NewCollector(rules.Resource)
	if d.AppliesTo.IsValid() {
		errs.Parameter(rules.ParamTimeType).Value(d.Timing.Value()).
			IsOneOf(charge.Codes(charge.TimingsFor(d.AppliesTo)))
		errs.Parameter(rules.ParamCalculationType).Value(d.Method.Value()).
			IsOneOf(charge.Codes(charge.MethodsFor(d.AppliesTo)))
	}
	if err := errs.Err(); err != nil {
		return err
	}
	if err := f.validator.ValidateTimingAndCalculationMethod(d.Timing, d.Method); err != nil {
		return err
	}
	return checkAmountBounds(d)
}

func checkAmountBounds(d charge.Definition) error {
	if d.MinAmount == nil || d.MaxAmount == nil {
		return nil
	}
	if !rules.AllowsMinMaxAmount(d.AppliesTo, d.Timing, d.Method) {
		return validation.NewDomainRuleError(validation.ErrMinMaxNotSupported, rules.CodeMinMaxNotSupported,
			fmt.Sprintf("Minimum and maximum amount is not supported with given settings of "+
				"[applies to: %s, charge time type: %s, charge calculation type: %s]", d.AppliesTo, d.Timing, d.Method))
	}
	if d.MaxAmount.LessThan(*d.MinAmount) {
		return validation.NewDomainRuleError(validation.ErrMinExceedsMax, rules.CodeMinExceedsMax,
			fmt.Sprintf("Minimum amount [ %s ] can not be greater than maximum amount [ %s ]", d.MinAmount, d.MaxAmount))
	}
	return nil
}

// =============================================================================
// FIELD ASSEMBLY
// =============================================================================

// apply copies every present field of in onto d. Absent fields leave d
// untouched; a present null clears an optional setting.
func apply(in Source, d *charge.Definition) error {
	r := reader{in: in}

	r.str(rules.ParamName, &d.Name)
	r.str(rules.ParamCurrencyCode, &d.CurrencyCode)
	if amount := r.decimal(rules.ParamAmount); amount != nil {
		d.Amount = *amount
	}

	if code := r.int(rules.ParamAppliesTo); code != nil {
		d.AppliesTo = charge.ApplicabilityOf(*code)
	}
	if code := r.int(rules.ParamTimeType); code != nil {
		d.Timing = charge.TimingOf(*code)
	}
	if code := r.int(rules.ParamCalculationType); code != nil {
		d.Method = charge.MethodOf(*code)
	}
	if in.Exists(rules.ParamPaymentMode) {
		d.PaymentMode = nil
		if code := r.int(rules.ParamPaymentMode); code != nil {
			if mode, ok := charge.PaymentModeOf(*code); ok {
				d.PaymentMode = &mode
			}
		}
	}

	r.flag(rules.ParamPenalty, &d.Penalty)
	r.flag(rules.ParamActive, &d.Active)

	if in.Exists(rules.ParamFeeOnMonthDay) {
		d.FeeOnMonthDay = r.monthDay(rules.ParamFeeOnMonthDay)
	}
	if in.Exists(rules.ParamFeeInterval) {
		d.FeeInterval = r.int(rules.ParamFeeInterval)
	}
	if in.Exists(rules.ParamFeeFrequency) {
		d.FeeFrequency = nil
		if code := r.int(rules.ParamFeeFrequency); code != nil {
			freq := charge.FeeFrequency(*code)
			d.FeeFrequency = &freq
		}
	}

	r.optionalDecimal(rules.ParamMinCap, &d.MinCap)
	r.optionalDecimal(rules.ParamMaxCap, &d.MaxCap)
	r.optionalDecimal(rules.ParamMinAmount, &d.MinAmount)
	r.optionalDecimal(rules.ParamMaxAmount, &d.MaxAmount)

	r.flag(rules.ParamEnableFreeWithdrawal, &d.FreeWithdrawal.Enabled)
	r.count(rules.ParamFreeWithdrawalFrequency, &d.FreeWithdrawal.Frequency)
	r.count(rules.ParamRestartCountFrequency, &d.FreeWithdrawal.RestartFrequency)
	r.count(rules.ParamCountFrequencyType, &d.FreeWithdrawal.CountFrequencyType)

	r.flag(rules.ParamEnablePaymentType, &d.PaymentType.Enabled)
	if id := r.long(rules.ParamPaymentTypeID); id != nil {
		d.PaymentType.PaymentTypeID = *id
	}

	if in.Exists(rules.ParamGLAccountID) {
		d.GLAccountID = r.long(rules.ParamGLAccountID)
	}
	if in.Exists(rules.ParamTaxGroupID) {
		d.TaxGroupID = r.long(rules.ParamTaxGroupID)
	}

	if in.Exists(rules.ParamChart) && r.err == nil {
		slabs, err := in.Slabs(rules.ParamChart)
		if err != nil {
			return fmt.Errorf("read %s: %w", rules.ParamChart, err)
		}
		*d = d.WithSlabs(slabs)
	}
	return r.err
}

// reader extracts fields and keeps the first error, so assembly reads as a
// flat list of assignments.
type reader struct {
	in  Source
	err error
}

func (r *reader) fail(name string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("read %s: %w", name, err)
	}
}

func (r *reader) int(name string) *int {
	n := r.long(name)
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func (r *reader) long(name string) *int64 {
	n, err := r.in.Int(name)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return n
}

func (r *reader) count(name string, dst *int) {
	if n := r.int(name); n != nil {
		*dst = *n
	}
}

func (r *reader) decimal(name string) *decimal.Decimal {
	d, err := r.in.Decimal(name)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return d
}

func (r *reader) optionalDecimal(name string, dst **decimal.Decimal) {
	if r.in.Exists(name) {
		*dst = r.decimal(name)
	}
}

func (r *reader) str(name string, dst *string) {
	s, err := r.in.String(name)
	if err != nil {
		r.fail(name, err)
		return
	}
	if s != nil {
		*dst = *s
	}
}

func (r *reader) flag(name string, dst *bool) {
	b, err := r.in.Bool(name)
	if err != nil {
		r.fail(name, err)
		return
	}
	if b != nil {
		*dst = *b
	}
}

func (r *reader) monthDay(name string) *charge.MonthDay {
	md, err := r.in.MonthDay(name)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return md
}
