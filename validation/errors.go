/*
errors.go - Error types produced by charge validation

PURPOSE:
  All error kinds a validation call can end in, in one place. Callers branch
  on them with errors.Is / errors.As and translate them into their own
  transport format.

ERROR CATEGORIES:
  1. Structural errors - field presence, range and membership violations.
     Accumulated as Error values and returned together as one *Failure.
  2. Domain rule errors - cross-field policy contradictions (min/max amount).
     Returned alone as *DomainRuleError the moment they are detected.
  3. Input shape errors - empty payload, unsupported parameters. Returned
     before any semantic check runs.

USAGE:
  err := validator.ValidateForCreate(in)
  var failure *validation.Failure
  switch {
  case errors.As(err, &failure):
      // show every failure.Errors entry
  case validation.IsDomainRule(err):
      // show the single policy message
  }

SEE ALSO:
  - collector.go: accumulates structural errors during one call
  - rules/: raises all three categories
*/
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/warp/charge-engine/charge"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidationFailed is the sentinel behind every *Failure.
	ErrValidationFailed = errors.New("validation errors exist")

	// ErrEmptyInput is returned when there is no payload to validate.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidFormat is returned when a present field cannot be read as its expected type.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrUnsupportedParameter is the sentinel behind *UnsupportedParameterError.
	ErrUnsupportedParameter = errors.New("unsupported parameter")

	// ErrMinMaxNotSupported is returned when min/max amounts are configured on a
	// charge whose settings do not allow them.
	ErrMinMaxNotSupported = errors.New("min and max amount not supported")

	// ErrMinExceedsMax is returned when the minimum amount is above the maximum.
	ErrMinExceedsMax = errors.New("min amount exceeds max amount")
)

// =============================================================================
// STRUCTURAL ERRORS
// =============================================================================

// Error is one failed check. Code is the full platform message code, e.g.
// "validation.msg.charge.name.cannot.be.blank"; Message is the default
// English rendering of it.
type Error struct {
	Resource  string
	Parameter string
	Code      string
	Message   string
	Value     any
	Args      []any
}

func (e Error) Error() string {
	return e.Code
}

// Failure is the aggregate of every structural error found in one call.
type Failure struct {
	Errors []Error
}

func (f *Failure) Error() string {
	if len(f.Errors) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, len(f.Errors))
	for i, e := range f.Errors {
		parts[i] = e.Message
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (f *Failure) Unwrap() error {
	return ErrValidationFailed
}

// Has reports whether any error was recorded for the parameter.
func (f *Failure) Has(parameter string) bool {
	for _, e := range f.Errors {
		if e.Parameter == parameter {
			return true
		}
	}
	return false
}

// Codes returns the error codes in recorded order.
func (f *Failure) Codes() []string {
	codes := make([]string, len(f.Errors))
	for i, e := range f.Errors {
		codes[i] = e.Code
	}
	return codes
}

// Parameters returns the distinct parameters with errors, in first-seen order.
func (f *Failure) Parameters() []string {
	var params []string
	seen := make(map[string]bool)
	for _, e := range f.Errors {
		if !seen[e.Parameter] {
			params = append(params, e.Parameter)
			seen[e.Parameter] = true
		}
	}
	return params
}

// =============================================================================
// FAIL-FAST ERRORS
// =============================================================================

// DomainRuleError is a business rule violation that stops validation at once.
type DomainRuleError struct {
	Code    string
	Message string
	Args    []any
	kind    error
}

// NewDomainRuleError builds a rule error of the given kind (one of the
// ErrMinMax* sentinels).
func NewDomainRuleError(kind error, code, message string, args ...any) *DomainRuleError {
	return &DomainRuleError{Code: code, Message: message, Args: args, kind: kind}
}

func (e *DomainRuleError) Error() string {
	return e.Message
}

func (e *DomainRuleError) Unwrap() error {
	return e.kind
}

// UnsupportedParameterError lists the payload fields outside the accepted schema.
type UnsupportedParameterError struct {
	Names []string
}

// NewUnsupportedParameterError sorts the names so the message is stable.
func NewUnsupportedParameterError(names []string) *UnsupportedParameterError {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return &UnsupportedParameterError{Names: sorted}
}

func (e *UnsupportedParameterError) Error() string {
	return fmt.Sprintf("unsupported parameters: %s", strings.Join(e.Names, ", "))
}

func (e *UnsupportedParameterError) Unwrap() error {
	return ErrUnsupportedParameter
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// AsFailure returns the aggregate failure wrapped in err, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsDomainRule returns true for fail-fast policy violations.
func IsDomainRule(err error) bool {
	return errors.Is(err, ErrMinMaxNotSupported) || errors.Is(err, ErrMinExceedsMax)
}

// IsInputShape returns true for errors raised before any semantic check ran.
func IsInputShape(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrUnsupportedParameter) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, charge.ErrUnknownCategoryValue)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidationFailed) || IsDomainRule(err) || IsInputShape(err)
}
