package charge

import (
	"slices"
	"strings"
)

// =============================================================================
// TIMING - When a charge is triggered
// =============================================================================

// Timing describes the event or schedule that triggers a charge.
type Timing int

const (
	TimingInvalid Timing = iota
	Disbursement
	SpecifiedDueDate
	SavingsActivation
	SavingsClosure
	WithdrawalFee
	AnnualFee
	MonthlyFee
	InstalmentFee
	OverdueInstallment
	OverdraftFee
	WeeklyFee
	TrancheDisbursement
	ShareAccountActivation
	SharePurchase
	ShareRedeem
	SavingsNoActivityFee
)

type timingTraits struct {
	name      string
	appliesTo []Applicability
}

// timingTable is the single source of truth for timing names and for which
// applicabilities accept each timing. The per-context subsets are derived from it.
var timingTable = map[Timing]timingTraits{
	Disbursement:           {"DISBURSEMENT", []Applicability{AppliesToLoan}},
	SpecifiedDueDate:       {"SPECIFIED_DUE_DATE", []Applicability{AppliesToLoan, AppliesToSavings, AppliesToClient}},
	SavingsActivation:      {"SAVINGS_ACTIVATION", []Applicability{AppliesToSavings}},
	SavingsClosure:         {"SAVINGS_CLOSURE", []Applicability{AppliesToSavings}},
	WithdrawalFee:          {"WITHDRAWAL_FEE", []Applicability{AppliesToSavings}},
	AnnualFee:              {"ANNUAL_FEE", []Applicability{AppliesToSavings}},
	MonthlyFee:             {"MONTHLY_FEE", []Applicability{AppliesToSavings}},
	InstalmentFee:          {"INSTALMENT_FEE", []Applicability{AppliesToLoan}},
	OverdueInstallment:     {"OVERDUE_INSTALLMENT", []Applicability{AppliesToLoan}},
	OverdraftFee:           {"OVERDRAFT_FEE", []Applicability{AppliesToSavings}},
	WeeklyFee:              {"WEEKLY_FEE", []Applicability{AppliesToSavings}},
	TrancheDisbursement:    {"TRANCHE_DISBURSEMENT", []Applicability{AppliesToLoan}},
	ShareAccountActivation: {"SHAREACCOUNT_ACTIVATION", []Applicability{AppliesToShare}},
	SharePurchase:          {"SHARE_PURCHASE", []Applicability{AppliesToShare}},
	ShareRedeem:            {"SHARE_REDEEM", []Applicability{AppliesToShare}},
	SavingsNoActivityFee:   {"SAVINGS_NOACTIVITY_FEE", []Applicability{AppliesToSavings}},
}

// AllTimings returns every legal timing in code order. This is the union of
// the per-applicability subsets.
func AllTimings() []Timing {
	out := make([]Timing, 0, len(timingTable))
	for t := range timingTable {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// TimingValues returns the legal raw timing codes.
func TimingValues() []int {
	return codesOf(AllTimings())
}

// TimingsFor returns the timings legal under the given applicability, in code order.
// An invalid applicability has no legal timings.
func TimingsFor(a Applicability) []Timing {
	var out []Timing
	for _, t := range AllTimings() {
		if slices.Contains(timingTable[t].appliesTo, a) {
			out = append(out, t)
		}
	}
	return out
}

func LoanTimings() []Timing    { return TimingsFor(AppliesToLoan) }
func SavingsTimings() []Timing { return TimingsFor(AppliesToSavings) }
func ClientTimings() []Timing  { return TimingsFor(AppliesToClient) }
func ShareTimings() []Timing   { return TimingsFor(AppliesToShare) }

// TimingFromCode maps a raw code, failing on codes outside TimingValues.
func TimingFromCode(code int) (Timing, error) {
	t := TimingOf(code)
	if t == TimingInvalid {
		return TimingInvalid, &UnknownCodeError{Category: "chargeTimeType", Code: code}
	}
	return t, nil
}

// TimingOf maps a raw code leniently; unknown codes yield TimingInvalid.
func TimingOf(code int) Timing {
	t := Timing(code)
	if _, ok := timingTable[t]; !ok {
		return TimingInvalid
	}
	return t
}

func (t Timing) Value() int { return int(t) }

func (t Timing) String() string {
	if traits, ok := timingTable[t]; ok {
		return traits.name
	}
	return "INVALID"
}

// Code is the stable message key of the variant, e.g. "chargeTimeType.weekly_fee".
func (t Timing) Code() string {
	return "chargeTimeType." + strings.ToLower(t.String())
}

func (t Timing) IsValid() bool { return t != TimingInvalid }

// LegalFor reports whether the timing may be used by a charge of the given applicability.
func (t Timing) LegalFor(a Applicability) bool {
	traits, ok := timingTable[t]
	return ok && slices.Contains(traits.appliesTo, a)
}

func (t Timing) IsDisbursement() bool           { return t == Disbursement }
func (t Timing) IsOnSpecifiedDueDate() bool     { return t == SpecifiedDueDate }
func (t Timing) IsSavingsActivation() bool      { return t == SavingsActivation }
func (t Timing) IsSavingsClosure() bool         { return t == SavingsClosure }
func (t Timing) IsWithdrawalFee() bool          { return t == WithdrawalFee }
func (t Timing) IsAnnualFee() bool              { return t == AnnualFee }
func (t Timing) IsMonthlyFee() bool             { return t == MonthlyFee }
func (t Timing) IsInstalmentFee() bool          { return t == InstalmentFee }
func (t Timing) IsOverdueInstallment() bool     { return t == OverdueInstallment }
func (t Timing) IsOverdraftFee() bool           { return t == OverdraftFee }
func (t Timing) IsWeeklyFee() bool              { return t == WeeklyFee }
func (t Timing) IsTrancheDisbursement() bool    { return t == TrancheDisbursement }
func (t Timing) IsShareAccountActivation() bool { return t == ShareAccountActivation }
func (t Timing) IsSharePurchase() bool          { return t == SharePurchase }
func (t Timing) IsShareRedeem() bool            { return t == ShareRedeem }
func (t Timing) IsSavingsNoActivityFee() bool   { return t == SavingsNoActivityFee }

// IsRecurringSavingsFee reports the timings that need a fee schedule on the savings account.
func (t Timing) IsRecurringSavingsFee() bool {
	return t == WeeklyFee || t == MonthlyFee || t == AnnualFee
}
