package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const codePrefix = "validation.msg"

// Collector accumulates structural errors for one validation call. It is not
// safe for concurrent use; every call creates its own.
type Collector struct {
	resource   string
	errs       []Error
	suppressed map[string]bool
}

// NewCollector returns an empty collector for the given resource name.
func NewCollector(resource string) *Collector {
	return &Collector{resource: resource, suppressed: make(map[string]bool)}
}

// Parameter starts a chain of checks on one parameter.
func (c *Collector) Parameter(name string) *Check {
	return &Check{c: c, param: name, disabled: c.suppressed[name]}
}

// Suppress disables further checks on a parameter, used once a malformed
// value has already been reported for it.
func (c *Collector) Suppress(name string) {
	c.suppressed[name] = true
}

// Suppressed reports whether checks on a parameter are disabled.
func (c *Collector) Suppressed(name string) bool {
	return c.suppressed[name]
}

// Add records an error built elsewhere.
func (c *Collector) Add(e Error) {
	if e.Resource == "" {
		e.Resource = c.resource
	}
	c.errs = append(c.errs, e)
}

// Len returns the number of recorded errors.
func (c *Collector) Len() int { return len(c.errs) }

// Errors returns a copy of the recorded errors in order.
func (c *Collector) Errors() []Error {
	return append([]Error(nil), c.errs...)
}

// Err returns nil when nothing was recorded, otherwise a *Failure.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &Failure{Errors: c.Errors()}
}

// =============================================================================
// CHECK - Chained checks on one parameter
// =============================================================================

// Check runs checks on a single parameter value. Checks other than NotNull and
// NotBlank skip nil values, so "optional but valid if present" is just a chain
// without NotNull.
type Check struct {
	c        *Collector
	param    string
	value    any
	disabled bool
}

// Value sets the value under check. Nil pointers become nil; other pointers
// are dereferenced.
func (k *Check) Value(v any) *Check {
	k.value = deref(v)
	return k
}

// NotNull fails when the value is absent.
func (k *Check) NotNull() *Check {
	// Checked through a pointer, so present zero values count as set.
	if _, failed := validate(&k.value, "required"); failed {
		k.fail(suffixFor("required"), fmt.Sprintf("The parameter `%s` is mandatory.", k.param))
	}
	return k
}

// NotBlank fails when the value is absent or only whitespace.
func (k *Check) NotBlank() *Check {
	if k.value == nil {
		return k.NotNull()
	}
	if s, ok := k.value.(string); ok {
		if tag, failed := validate(strings.TrimSpace(s), "required"); failed {
			k.fail(suffixFor(tag), fmt.Sprintf("The parameter `%s` is mandatory.", k.param))
		}
	}
	return k
}

// NotExceedingLengthOf fails when a string value is longer than max characters.
func (k *Check) NotExceedingLengthOf(max int) *Check {
	s, ok := k.value.(string)
	if !ok {
		return k
	}
	if tag, failed := validate(strings.TrimSpace(s), fmt.Sprintf("max=%d", max)); failed {
		k.fail(suffixFor(tag),
			fmt.Sprintf("The parameter `%s` exceeds max length of %d.", k.param, max), max)
	}
	return k
}

// IsOneOf fails when an integer value is not among the allowed codes.
func (k *Check) IsOneOf(allowed []int) *Check {
	n, ok := k.integer()
	if !ok {
		return k
	}
	if tag, failed := validate(n, "oneof="+joinInts(allowed, " ")); failed {
		k.fail(suffixFor(tag),
			fmt.Sprintf("The parameter `%s` must be one of %v .", k.param, allowed), n, allowed)
	}
	return k
}

// IsNotOneOf fails when an integer value is one of the unwanted codes.
func (k *Check) IsNotOneOf(unwanted ...int) *Check {
	n, ok := k.integer()
	if !ok || len(unwanted) == 0 {
		return k
	}
	if tag, failed := validate(n, "ne="+joinInts(unwanted, ",ne=")); failed {
		k.fail(suffixFor(tag),
			fmt.Sprintf("The parameter `%s` must not be any of %v .", k.param, unwanted), n, unwanted)
	}
	return k
}

// IntegerGreaterThanZero fails when an integer value is zero or negative.
func (k *Check) IntegerGreaterThanZero() *Check {
	n, ok := k.integer()
	if !ok {
		return k
	}
	if tag, failed := validate(n, "gt=0"); failed {
		k.fail(suffixFor(tag), fmt.Sprintf("The parameter `%s` must be greater than 0.", k.param))
	}
	return k
}

// LongGreaterThanZero is IntegerGreaterThanZero for identifier fields.
func (k *Check) LongGreaterThanZero() *Check {
	return k.IntegerGreaterThanZero()
}

// InRange fails when an integer value is outside [min, max].
func (k *Check) InRange(min, max int) *Check {
	n, ok := k.integer()
	if !ok {
		return k
	}
	if tag, failed := validate(n, fmt.Sprintf("gte=%d,lte=%d", min, max)); failed {
		k.fail(suffixFor(tag),
			fmt.Sprintf("The parameter `%s` must be between %d and %d.", k.param, min, max), min, max)
	}
	return k
}

// PositiveAmount fails when a decimal value is zero or negative.
func (k *Check) PositiveAmount() *Check {
	d, ok := k.value.(decimal.Decimal)
	if !ok {
		return k
	}
	if tag, failed := validate(d, tagPositiveAmount); failed {
		k.fail(suffixFor(tag), fmt.Sprintf("The parameter `%s` must be greater than 0.", k.param))
	}
	return k
}

// MustBeBlankWhenParameterProvidedIs fails when the value is set while another
// parameter has the given value.
func (k *Check) MustBeBlankWhenParameterProvidedIs(other string, otherValue any) *Check {
	if k.value == nil {
		return k
	}
	if _, failed := validate(k.value, tagBlank); failed {
		k.fail(fmt.Sprintf("cannot.also.be.provided.when.%s.is.%v", other, otherValue),
			fmt.Sprintf("The parameter `%s` cannot also be provided when `%s` is %v", k.param, other, otherValue),
			other, otherValue)
	}
	return k
}

// FailWithCode records an error with a parameter-scoped code.
func (k *Check) FailWithCode(code string, args ...any) *Check {
	k.fail(code, fmt.Sprintf("Failed data validation due to: %s.", code), args...)
	return k
}

// FailWithCodeNoParameterAddedToErrorCode records an error whose code is
// scoped to the resource only.
func (k *Check) FailWithCodeNoParameterAddedToErrorCode(code string, args ...any) *Check {
	if k.disabled {
		return k
	}
	k.c.Add(Error{
		Resource:  k.c.resource,
		Parameter: k.param,
		Code:      strings.Join([]string{codePrefix, k.c.resource, code}, "."),
		Message:   fmt.Sprintf("Failed data validation due to: %s.", code),
		Value:     k.value,
		Args:      args,
	})
	return k
}

func (k *Check) fail(suffix, message string, args ...any) {
	if k.disabled {
		return
	}
	k.c.Add(Error{
		Resource:  k.c.resource,
		Parameter: k.param,
		Code:      strings.Join([]string{codePrefix, k.c.resource, k.param, suffix}, "."),
		Message:   message,
		Value:     k.value,
		Args:      args,
	})
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

func (k *Check) integer() (int, bool) {
	switch n := k.value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	}
	return 0, false
}

func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	if rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}
