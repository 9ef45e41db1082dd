/*
Package rules decides whether a proposed charge definition is internally
consistent.

PURPOSE:
  Given a create or update payload, check every field against its own
  constraints and against the fields it depends on: applicability decides
  which timings and calculation methods are legal, timing decides which
  savings schedule fields are required, and so on. Rate charts are checked
  separately by ValidateSlabSet.

EVALUATION ORDER:
  1. Schema closure: unknown field names reject the payload outright
  2. Applicability, calculation method, fee schedule, withdrawal and payment
     type settings
  3. Applicability branch (loan / savings / client / share)
  4. Name, currency, amount, flags, caps, tax group
  5. Min/max amount policy, which may stop the call with a DomainRuleError
  6. One aggregate *validation.Failure if anything above was recorded

KEY CONCEPTS:
  - Structural errors accumulate; the caller sees all of them at once
  - Domain rule errors (min/max policy) return alone, immediately
  - Create treats core fields as mandatory; update only checks what is present

CONCURRENCY:
  Validator holds no state. Every call builds its own collector, so one
  Validator can serve any number of goroutines.

SEE ALSO:
  - fields/: the Extractor every payload arrives through
  - validation/: error types and the collector
*/
package rules

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/validation"
)

// Validator runs charge definition checks. The zero value is ready to use.
type Validator struct{}

// New returns a Validator.
func New() *Validator {
	return &Validator{}
}

// checkSchema rejects payloads carrying field names outside the schema.
func checkSchema(in fields.Extractor) error {
	if in == nil {
		return validation.ErrEmptyInput
	}
	var unsupported []string
	for _, name := range in.Names() {
		if !IsSupportedParameter(name) {
			unsupported = append(unsupported, name)
		}
	}
	if len(unsupported) > 0 {
		return validation.NewUnsupportedParameterError(unsupported)
	}
	return nil
}

// =============================================================================
// PAYLOAD - Extraction bound to one collector
// =============================================================================

// payload reads fields for one validation call. Malformed values are
// recorded once as invalid.format and read as absent from then on.
type payload struct {
	in     fields.Extractor
	errs   *validation.Collector
	create bool
	ints   map[string]*int
}

func newPayload(in fields.Extractor, create bool) *payload {
	return &payload{
		in:     in,
		errs:   validation.NewCollector(Resource),
		create: create,
		ints:   make(map[string]*int),
	}
}

// wants reports whether a field takes part in this call: always on create,
// only when present on update.
func (p *payload) wants(name string) bool {
	return p.create || p.in.Exists(name)
}

func (p *payload) exists(name string) bool {
	return p.in.Exists(name)
}

func (p *payload) check(name string, value any) *validation.Check {
	return p.errs.Parameter(name).Value(value)
}

func (p *payload) malformed(name string, err error) {
	var fe *fields.FormatError
	if !errors.As(err, &fe) {
		fe = &fields.FormatError{Field: name}
	}
	p.errs.Parameter(name).Value(fe.Value).FailWithCode("invalid.format", fe.Want)
	p.errs.Suppress(name)
}

func (p *payload) int(name string) *int {
	if v, ok := p.ints[name]; ok {
		return v
	}
	var out *int
	if !p.errs.Suppressed(name) {
		n, err := p.in.Int(name)
		switch {
		case err != nil:
			p.malformed(name, err)
		case n != nil:
			v := int(*n)
			out = &v
		}
	}
	p.ints[name] = out
	return out
}

func (p *payload) long(name string) *int64 {
	if p.errs.Suppressed(name) {
		return nil
	}
	n, err := p.in.Int(name)
	if err != nil {
		p.malformed(name, err)
		return nil
	}
	return n
}

func (p *payload) decimal(name string) *decimal.Decimal {
	if p.errs.Suppressed(name) {
		return nil
	}
	d, err := p.in.Decimal(name)
	if err != nil {
		p.malformed(name, err)
		return nil
	}
	return d
}

func (p *payload) bool(name string) *bool {
	if p.errs.Suppressed(name) {
		return nil
	}
	b, err := p.in.Bool(name)
	if err != nil {
		p.malformed(name, err)
		return nil
	}
	return b
}

func (p *payload) string(name string) *string {
	if p.errs.Suppressed(name) {
		return nil
	}
	s, err := p.in.String(name)
	if err != nil {
		p.malformed(name, err)
		return nil
	}
	return s
}

func (p *payload) monthDay(name string) *charge.MonthDay {
	if p.errs.Suppressed(name) {
		return nil
	}
	md, err := p.in.MonthDay(name)
	if err != nil {
		p.malformed(name, err)
		return nil
	}
	return md
}

// anyValue reads a field for a must-be-blank check, where any present
// non-string value counts as provided.
func (p *payload) anyValue(name string) any {
	s, err := p.in.String(name)
	if err != nil {
		var fe *fields.FormatError
		if errors.As(err, &fe) {
			return fe.Value
		}
		return err.Error()
	}
	return s
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func applicabilityOf(code *int) charge.Applicability {
	if code == nil {
		return charge.ApplicabilityInvalid
	}
	return charge.ApplicabilityOf(*code)
}

func timingOf(code *int) charge.Timing {
	if code == nil {
		return charge.TimingInvalid
	}
	return charge.TimingOf(*code)
}

func methodOf(code *int) charge.CalculationMethod {
	if code == nil {
		return charge.MethodInvalid
	}
	return charge.MethodOf(*code)
}
