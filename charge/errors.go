package charge

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategoryValue is returned when a raw code maps to no variant of its category.
	ErrUnknownCategoryValue = errors.New("unknown category value")

	// ErrInvalidMonthDay is returned for a month/day pair that names no calendar day.
	ErrInvalidMonthDay = errors.New("invalid month day")
)

// UnknownCodeError names the category and the raw code that failed to map.
type UnknownCodeError struct {
	Category string
	Code     int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code: %d", e.Category, e.Code)
}

func (e *UnknownCodeError) Unwrap() error {
	return ErrUnknownCategoryValue
}
