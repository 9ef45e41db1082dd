package charge

import (
	"slices"
	"strings"
)

// =============================================================================
// CALCULATION METHOD - How the charge amount is derived
// =============================================================================

// CalculationMethod is the basis the charge amount is computed from.
type CalculationMethod int

const (
	MethodInvalid CalculationMethod = iota
	Flat
	PercentOfAmount
	PercentOfAmountAndInterest
	PercentOfInterest
	PercentOfDisbursement
)

type methodTraits struct {
	name      string
	appliesTo []Applicability
	// restrictedTo lists the restricting timings under which this method stays legal.
	restrictedTo []Timing
}

// restrictingTimings narrow the legal methods beyond what applicability allows.
var restrictingTimings = []Timing{ShareAccountActivation, TrancheDisbursement}

var methodTable = map[CalculationMethod]methodTraits{
	Flat: {
		name:         "FLAT",
		appliesTo:    []Applicability{AppliesToLoan, AppliesToSavings, AppliesToClient, AppliesToShare},
		restrictedTo: []Timing{ShareAccountActivation, TrancheDisbursement},
	},
	PercentOfAmount: {
		name:      "PERCENT_OF_AMOUNT",
		appliesTo: []Applicability{AppliesToLoan, AppliesToSavings, AppliesToShare},
	},
	PercentOfAmountAndInterest: {
		name:      "PERCENT_OF_AMOUNT_AND_INTEREST",
		appliesTo: []Applicability{AppliesToLoan},
	},
	PercentOfInterest: {
		name:      "PERCENT_OF_INTEREST",
		appliesTo: []Applicability{AppliesToLoan},
	},
	PercentOfDisbursement: {
		name:         "PERCENT_OF_DISBURSEMENT_AMOUNT",
		appliesTo:    []Applicability{AppliesToLoan},
		restrictedTo: []Timing{TrancheDisbursement},
	},
}

// AllMethods returns every legal calculation method in code order.
func AllMethods() []CalculationMethod {
	out := make([]CalculationMethod, 0, len(methodTable))
	for m := range methodTable {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// MethodValues returns the legal raw calculation method codes.
func MethodValues() []int {
	return codesOf(AllMethods())
}

// MethodsFor returns the methods legal under the given applicability, in code order.
func MethodsFor(a Applicability) []CalculationMethod {
	var out []CalculationMethod
	for _, m := range AllMethods() {
		if slices.Contains(methodTable[m].appliesTo, a) {
			out = append(out, m)
		}
	}
	return out
}

func LoanMethods() []CalculationMethod    { return MethodsFor(AppliesToLoan) }
func SavingsMethods() []CalculationMethod { return MethodsFor(AppliesToSavings) }
func ClientMethods() []CalculationMethod  { return MethodsFor(AppliesToClient) }
func ShareMethods() []CalculationMethod   { return MethodsFor(AppliesToShare) }

// MethodsForTiming returns the restricted method subset of a restricting timing.
// ok is false when the timing places no restriction of its own.
func MethodsForTiming(t Timing) (methods []CalculationMethod, ok bool) {
	if !slices.Contains(restrictingTimings, t) {
		return nil, false
	}
	for _, m := range AllMethods() {
		if slices.Contains(methodTable[m].restrictedTo, t) {
			methods = append(methods, m)
		}
	}
	return methods, true
}

// ShareAccountActivationMethods returns the methods legal for share account activation charges.
func ShareAccountActivationMethods() []CalculationMethod {
	methods, _ := MethodsForTiming(ShareAccountActivation)
	return methods
}

// TrancheDisbursementMethods returns the methods legal for tranche disbursement charges.
func TrancheDisbursementMethods() []CalculationMethod {
	methods, _ := MethodsForTiming(TrancheDisbursement)
	return methods
}

// MethodFromCode maps a raw code, failing on codes outside MethodValues.
func MethodFromCode(code int) (CalculationMethod, error) {
	m := MethodOf(code)
	if m == MethodInvalid {
		return MethodInvalid, &UnknownCodeError{Category: "chargeCalculationType", Code: code}
	}
	return m, nil
}

// MethodOf maps a raw code leniently; unknown codes yield MethodInvalid.
func MethodOf(code int) CalculationMethod {
	m := CalculationMethod(code)
	if _, ok := methodTable[m]; !ok {
		return MethodInvalid
	}
	return m
}

func (m CalculationMethod) Value() int { return int(m) }

func (m CalculationMethod) String() string {
	if traits, ok := methodTable[m]; ok {
		return traits.name
	}
	return "INVALID"
}

// Code is the stable message key of the variant, e.g. "chargeCalculationType.flat".
func (m CalculationMethod) Code() string {
	return "chargeCalculationType." + strings.ToLower(m.String())
}

func (m CalculationMethod) IsValid() bool { return m != MethodInvalid }

// LegalFor reports whether the method may be used by a charge of the given applicability.
func (m CalculationMethod) LegalFor(a Applicability) bool {
	traits, ok := methodTable[m]
	return ok && slices.Contains(traits.appliesTo, a)
}

func (m CalculationMethod) IsFlat() bool { return m == Flat }

// IsPercentage reports every method computed as a percentage of some base.
func (m CalculationMethod) IsPercentage() bool {
	return m.IsValid() && m != Flat
}

func (m CalculationMethod) IsPercentOfAmount() bool { return m == PercentOfAmount }

func (m CalculationMethod) IsPercentOfDisbursement() bool { return m == PercentOfDisbursement }
