package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
)

// Custom tags registered on the shared engine.
const (
	tagPositiveAmount = "positive_amount"
	tagBlank          = "blank"
)

// tagSuffixes maps a failing validator tag onto the platform code suffix.
var tagSuffixes = map[string]string{
	"required":        "cannot.be.blank",
	"max":             "exceeds.max.length",
	"oneof":           "is.not.one.of.expected.enumerations",
	"ne":              "is.one.of.unwanted.enumerations",
	"gt":              "not.greater.than.zero",
	"gte":             "is.not.within.expected.range",
	"lte":             "is.not.within.expected.range",
	tagPositiveAmount: "not.greater.than.zero",
}

// engine is shared by every Check. A *validator.Validate is safe for
// concurrent use once its registrations are done.
var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New()

	// Struct values are reported in their canonical text form so tags see a
	// scalar instead of skipping the struct.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(decimal.Decimal).String()
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(charge.MonthDay).String()
	}, charge.MonthDay{})

	mustRegister(v, tagPositiveAmount, positiveAmount)
	mustRegister(v, tagBlank, blank)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// positiveAmount accepts decimals strictly above zero.
func positiveAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.IsPositive()
}

// blank accepts only whitespace strings.
func blank(fl validator.FieldLevel) bool {
	field := fl.Field()
	return field.Kind() == reflect.String && strings.TrimSpace(field.String()) == ""
}

// validate runs tag against value and returns the first failing tag.
func validate(value any, tag string) (string, bool) {
	err := engine.Var(value, tag)
	if err == nil {
		return "", false
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Tag(), true
	}
	return tag, true
}

func suffixFor(tag string) string {
	if suffix, ok := tagSuffixes[tag]; ok {
		return suffix
	}
	return tag
}
