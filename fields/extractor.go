/*
Package fields reads typed values out of an already-decoded request payload.

PURPOSE:
  The rule engine never sees raw JSON or YAML. It asks an Extractor for one
  named field at a time and gets back an already-typed value, or nil when
  the field is absent or explicitly null. Exists tells those two apart, which
  is what update validation keys on.

KEY CONCEPTS:
  - Absent and null both extract as a nil pointer
  - A present value of the wrong shape is a *FormatError, never a zero value
  - Numbers may arrive as JSON numbers, Go numeric kinds or numeric strings

USAGE:
  in, err := fields.ParseJSON(body)
  if err != nil {
      return err
  }
  amount, err := in.Decimal("amount")

SEE ALSO:
  - map.go: the map-backed implementation used by every adapter
  - rules/: the only consumer inside the core
*/
package fields

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
)

// Extractor gives typed, optional access to the fields of one payload.
type Extractor interface {
	// Names returns every field name present in the payload, sorted.
	Names() []string
	// Exists reports whether the field is present, even if its value is null.
	Exists(name string) bool

	Int(name string) (*int64, error)
	Decimal(name string) (*decimal.Decimal, error)
	Bool(name string) (*bool, error)
	MonthDay(name string) (*charge.MonthDay, error)
	String(name string) (*string, error)
}

// ErrInvalidFormat is the sentinel behind every *FormatError.
var ErrInvalidFormat = validation.ErrInvalidFormat

// FormatError reports a present field whose value cannot be read as the
// requested type.
type FormatError struct {
	Field string
	Want  string
	Value any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("field %q: cannot read %v (%T) as %s", e.Field, e.Value, e.Value, e.Want)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}
