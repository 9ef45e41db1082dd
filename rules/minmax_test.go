package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/rules"
	"github.com/warp/charge-engine/validation"
)

func TestMinMax_LoanOnSpecifiedDueDate_NotSupported(t *testing.T) {
	// GIVEN: A loan charge due on a specified date, for every loan method
	for _, method := range charge.LoanMethods() {
		if method.IsPercentOfDisbursement() {
			continue // rejected structurally by the cross-check before the policy matters
		}
		in := with(loanCharge(), m{
			"chargeTimeType":        2,
			"chargeCalculationType": method.Value(),
			"minAmount":             10,
			"maxAmount":             20,
		})

		// WHEN: Validated for create
		err := rules.New().ValidateForCreate(in)

		// THEN: The min/max bounds are rejected as unsupported
		var rule *validation.DomainRuleError
		require.ErrorAs(t, err, &rule, "method %s", method)
		assert.ErrorIs(t, err, validation.ErrMinMaxNotSupported)
		assert.Equal(t, rules.CodeMinMaxNotSupported, rule.Code)
		assert.Contains(t, rule.Message, "SPECIFIED_DUE_DATE")
	}
}

func TestMinMax_LoanMinAboveMax(t *testing.T) {
	// GIVEN: A percent-of-amount disbursement charge with min 50 and max 20
	in := with(loanCharge(), m{
		"chargeTimeType":        1,
		"chargeCalculationType": 2,
		"minAmount":             50,
		"maxAmount":             20,
	})

	// WHEN: Validated
	err := rules.New().ValidateForCreate(in)

	// THEN: MinExceedsMax, naming both values
	assert.ErrorIs(t, err, validation.ErrMinExceedsMax)
	assert.Contains(t, err.Error(), "[ 50 ]")
	assert.Contains(t, err.Error(), "[ 20 ]")
}

func TestMinMax_LoanWithinBounds(t *testing.T) {
	in := with(loanCharge(), m{
		"chargeTimeType":        8,
		"chargeCalculationType": 3,
		"minAmount":             "5",
		"maxAmount":             "5",
	})

	assert.NoError(t, rules.New().ValidateForCreate(in))
}

func TestMinMax_LoanFlat_NotSupported(t *testing.T) {
	in := with(loanCharge(), m{"minAmount": 1, "maxAmount": 2})

	assert.ErrorIs(t, rules.New().ValidateForCreate(in), validation.ErrMinMaxNotSupported)
}

func TestMinMax_SavingsPercentWithdrawalFee_Succeeds(t *testing.T) {
	in := with(savingsCharge(5), m{"chargeCalculationType": 2, "minAmount": 5, "maxAmount": 15})

	assert.NoError(t, rules.New().ValidateForCreate(in))
}

func TestMinMax_SavingsOtherSettings_NotSupported(t *testing.T) {
	v := rules.New()

	flatWithdrawal := with(savingsCharge(5), m{"minAmount": 5, "maxAmount": 15})
	percentClosure := with(savingsCharge(4), m{"chargeCalculationType": 2, "minAmount": 5, "maxAmount": 15})

	assert.ErrorIs(t, v.ValidateForCreate(flatWithdrawal), validation.ErrMinMaxNotSupported)
	assert.ErrorIs(t, v.ValidateForCreate(percentClosure), validation.ErrMinMaxNotSupported)
}

func TestMinMax_ClientAndShare_AlwaysNotSupported(t *testing.T) {
	// GIVEN: Client and share charges with bounds, one also structurally broken
	payloads := []*fields.Map{
		with(clientCharge(), m{"minAmount": 1, "maxAmount": 2}),
		with(clientCharge(), m{"name": "", "minAmount": 1, "maxAmount": 2}),
		with(shareCharge(14, 2), m{"minAmount": 1, "maxAmount": 2}),
	}

	for _, in := range payloads {
		// WHEN: Validated
		err := rules.New().ValidateForCreate(in)

		// THEN: Only the domain rule error comes back, never the structural list
		assert.ErrorIs(t, err, validation.ErrMinMaxNotSupported)
		assert.True(t, validation.IsDomainRule(err))
		_, isFailure := validation.AsFailure(err)
		assert.False(t, isFailure)
	}
}

func TestMinMax_OnlyOneBound_PolicySkipped(t *testing.T) {
	in := with(clientCharge(), m{"minAmount": 1})

	assert.NoError(t, rules.New().ValidateForCreate(in))
}

func TestAllowsMinMaxAmount(t *testing.T) {
	tests := []struct {
		a    charge.Applicability
		t    charge.Timing
		m    charge.CalculationMethod
		want bool
	}{
		{charge.AppliesToSavings, charge.WithdrawalFee, charge.PercentOfAmount, true},
		{charge.AppliesToSavings, charge.WithdrawalFee, charge.Flat, false},
		{charge.AppliesToSavings, charge.AnnualFee, charge.PercentOfAmount, false},
		{charge.AppliesToLoan, charge.Disbursement, charge.PercentOfInterest, true},
		{charge.AppliesToLoan, charge.Disbursement, charge.MethodInvalid, true},
		{charge.AppliesToLoan, charge.SpecifiedDueDate, charge.PercentOfAmount, false},
		{charge.AppliesToLoan, charge.OverdueInstallment, charge.Flat, false},
		{charge.AppliesToClient, charge.SpecifiedDueDate, charge.PercentOfAmount, false},
		{charge.AppliesToShare, charge.SharePurchase, charge.PercentOfAmount, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rules.AllowsMinMaxAmount(tt.a, tt.t, tt.m), "%s/%s/%s", tt.a, tt.t, tt.m)
	}
}
