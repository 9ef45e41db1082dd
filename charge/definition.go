package charge

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DEFINITION - The validated charge carrier
// =============================================================================

// ID identifies a stored charge definition. Zero means not yet persisted.
type ID int64

// Definition is the canonical representation of a validated charge. Optional
// settings are pointers; nil means not configured.
type Definition struct {
	ID           ID
	Name         string
	CurrencyCode string
	Amount       decimal.Decimal

	AppliesTo   Applicability
	Timing      Timing
	Method      CalculationMethod
	PaymentMode *PaymentMode

	Penalty bool
	Active  bool

	// Savings fee schedule
	FeeOnMonthDay *MonthDay
	FeeInterval   *int
	FeeFrequency  *FeeFrequency

	// Percentage caps
	MinCap *decimal.Decimal
	MaxCap *decimal.Decimal

	// Amount bounds, loans and savings only
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	FreeWithdrawal FreeWithdrawal
	PaymentType    PaymentTypeRestriction

	// Opaque references owned by other subsystems
	GLAccountID *int64
	TaxGroupID  *int64

	// Rate chart; empty unless the charge varies by period
	Slabs       []Slab
	VaryAmounts bool
}

// FreeWithdrawal configures how many withdrawals are free before a withdrawal fee applies.
type FreeWithdrawal struct {
	Enabled            bool
	Frequency          int
	RestartFrequency   int
	CountFrequencyType int
}

// PaymentTypeRestriction limits a charge to a single payment type.
type PaymentTypeRestriction struct {
	Enabled       bool
	PaymentTypeID int64
}

// Lookup returns the reduced definition used in pick lists: identity and the
// penalty flag only.
func Lookup(id ID, name string, penalty bool) Definition {
	return Definition{ID: id, Name: name, Penalty: penalty}
}

// WithSlabs returns a copy of d carrying the given rate chart.
func (d Definition) WithSlabs(slabs []Slab) Definition {
	d.Slabs = append([]Slab(nil), slabs...)
	d.VaryAmounts = len(slabs) > 0
	return d
}

// IsOverdueInstallmentCharge reports whether the charge is applied to overdue installments.
func (d Definition) IsOverdueInstallmentCharge() bool {
	return d.Timing.IsOverdueInstallment()
}

// SlabFor returns the chart slab containing the given period.
func (d Definition) SlabFor(period int) (Slab, bool) {
	for _, s := range d.Slabs {
		if s.Contains(period) {
			return s, true
		}
	}
	return Slab{}, false
}

// SortByIDDesc orders definitions newest first.
func SortByIDDesc(defs []Definition) {
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].ID > defs[j].ID })
}

// =============================================================================
// PRODUCT CHARGES - Definition projected onto an account
// =============================================================================

// LoanCharge is a charge definition as attached to a loan.
type LoanCharge struct {
	ChargeID     ID
	Name         string
	CurrencyCode string
	Amount       decimal.Decimal
	// Percentage is set only for percent-of-amount charges.
	Percentage  *decimal.Decimal
	Timing      Timing
	Method      CalculationMethod
	Penalty     bool
	PaymentMode *PaymentMode
	MinCap      *decimal.Decimal
	MaxCap      *decimal.Decimal
}

// ToLoanCharge projects the definition onto a loan.
func (d Definition) ToLoanCharge() LoanCharge {
	lc := LoanCharge{
		ChargeID:     d.ID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		Amount:       d.Amount,
		Timing:       d.Timing,
		Method:       d.Method,
		Penalty:      d.Penalty,
		PaymentMode:  d.PaymentMode,
		MinCap:       d.MinCap,
		MaxCap:       d.MaxCap,
	}
	if d.Method.IsPercentOfAmount() {
		pct := d.Amount
		lc.Percentage = &pct
	}
	return lc
}

// AccountCharge is a charge definition as attached to a savings or share
// account, before anything has been paid against it.
type AccountCharge struct {
	ChargeID          ID
	Name              string
	CurrencyCode      string
	Amount            decimal.Decimal
	AmountPaid        decimal.Decimal
	AmountWaived      decimal.Decimal
	AmountWrittenOff  decimal.Decimal
	AmountOutstanding decimal.Decimal
	Percentage        decimal.Decimal
	Timing            Timing
	Method            CalculationMethod
	Penalty           bool
	FeeOnMonthDay     *MonthDay
	FeeInterval       *int
}

// ToSavingsCharge projects the definition onto a savings account.
func (d Definition) ToSavingsCharge() AccountCharge {
	ac := d.accountCharge()
	ac.FeeOnMonthDay = d.FeeOnMonthDay
	ac.FeeInterval = d.FeeInterval
	return ac
}

// ToShareCharge projects the definition onto a share account.
func (d Definition) ToShareCharge() AccountCharge {
	return d.accountCharge()
}

func (d Definition) accountCharge() AccountCharge {
	return AccountCharge{
		ChargeID:          d.ID,
		Name:              d.Name,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		AmountPaid:        decimal.Zero,
		AmountWaived:      decimal.Zero,
		AmountWrittenOff:  decimal.Zero,
		AmountOutstanding: decimal.Zero,
		Percentage:        decimal.Zero,
		Timing:            d.Timing,
		Method:            d.Method,
		Penalty:           d.Penalty,
	}
}
