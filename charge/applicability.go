/*
Package charge defines the vocabulary of charge definitions: the closed
categories a charge is described with, the slab ranges of a rate chart, and
the canonical Definition carrier handed to the rest of the platform.

KEY CONCEPTS:
  - Applicability: which product a charge attaches to (loan, savings, client, share)
  - Timing: the event or schedule that triggers the charge
  - CalculationMethod: how the charge amount is derived (flat or a percentage base)
  - PaymentMode / FeeFrequency: small auxiliary categories
  - Slab: one [from, to) period range of a tiered rate chart

CATEGORY CONTRACT:
  Every category is an integer type with:
    XxxValues()          all legal raw codes, ascending
    XxxFromCode(code)    strict mapping, fails with ErrUnknownCategoryValue
    XxxOf(code)          lenient mapping, unknown codes become the Invalid variant
  plus named subsets per context (LoanTimings, SavingsMethods, ...). All of
  them are pure lookups over the package-level tables.

SEE ALSO:
  - timing.go, calculation.go: the two tables the rule engine branches on
  - slab.go: range comparison used by the slab-set checker
  - rules/: the validation engine consuming these categories
*/
package charge

import (
	"slices"
	"strings"
)

// =============================================================================
// APPLICABILITY - Which product type a charge attaches to
// =============================================================================

// Applicability selects the rule branch a charge definition is validated under.
type Applicability int

const (
	ApplicabilityInvalid Applicability = iota
	AppliesToLoan
	AppliesToSavings
	AppliesToClient
	AppliesToShare
)

var applicabilityNames = map[Applicability]string{
	AppliesToLoan:    "LOAN",
	AppliesToSavings: "SAVINGS",
	AppliesToClient:  "CLIENT",
	AppliesToShare:   "SHARES",
}

// Applicabilities returns every legal applicability in code order.
func Applicabilities() []Applicability {
	return []Applicability{AppliesToLoan, AppliesToSavings, AppliesToClient, AppliesToShare}
}

// ApplicabilityValues returns the legal raw codes.
func ApplicabilityValues() []int {
	return codesOf(Applicabilities())
}

// ApplicabilityFromCode maps a raw code, failing on codes outside ApplicabilityValues.
func ApplicabilityFromCode(code int) (Applicability, error) {
	a := ApplicabilityOf(code)
	if a == ApplicabilityInvalid {
		return ApplicabilityInvalid, &UnknownCodeError{Category: "chargeAppliesTo", Code: code}
	}
	return a, nil
}

// ApplicabilityOf maps a raw code leniently; unknown codes yield ApplicabilityInvalid.
func ApplicabilityOf(code int) Applicability {
	a := Applicability(code)
	if _, ok := applicabilityNames[a]; !ok {
		return ApplicabilityInvalid
	}
	return a
}

func (a Applicability) Value() int { return int(a) }

func (a Applicability) String() string {
	if name, ok := applicabilityNames[a]; ok {
		return name
	}
	return "INVALID"
}

// Code is the stable message key of the variant, e.g. "chargeAppliesTo.loan".
func (a Applicability) Code() string {
	return "chargeAppliesTo." + strings.ToLower(a.String())
}

func (a Applicability) IsValid() bool { return a != ApplicabilityInvalid }

func (a Applicability) IsLoan() bool    { return a == AppliesToLoan }
func (a Applicability) IsSavings() bool { return a == AppliesToSavings }
func (a Applicability) IsClient() bool  { return a == AppliesToClient }
func (a Applicability) IsShare() bool   { return a == AppliesToShare }

// SupportsMinMaxAmount reports whether min/max amounts can be configured at all
// for this applicability. Whether the rest of the definition allows it is
// decided by the rule engine.
func (a Applicability) SupportsMinMaxAmount() bool {
	return a == AppliesToLoan || a == AppliesToSavings
}

// =============================================================================
// HELPERS
// =============================================================================

// Codes returns the sorted raw codes of a subset, for membership checks.
func Codes[T ~int](values []T) []int {
	return codesOf(values)
}

func codesOf[T ~int](values []T) []int {
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = int(v)
	}
	slices.Sort(codes)
	return codes
}
