package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/rules"
	"github.com/warp/charge-engine/validation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type m = map[string]any

// with returns a copy of base with the overrides applied. A nil override
// value removes the key; use explicitNull to keep a key with a null value.
func with(base m, overrides m) *fields.Map {
	out := m{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			delete(out, k)
			continue
		}
		if v == explicitNull {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return fields.FromMap(out)
}

type nullMarker struct{}

var explicitNull = nullMarker{}

func loanCharge() m {
	return m{
		"name":                  "Processing fee",
		"currencyCode":          "USD",
		"amount":                "100",
		"chargeAppliesTo":       1,
		"chargeTimeType":        1,
		"chargeCalculationType": 1,
		"chargePaymentMode":     0,
		"penalty":               false,
		"active":                true,
	}
}

func savingsCharge(timing int) m {
	return m{
		"name":                  "Savings fee",
		"currencyCode":          "EUR",
		"amount":                5,
		"chargeAppliesTo":       2,
		"chargeTimeType":        timing,
		"chargeCalculationType": 1,
	}
}

func clientCharge() m {
	return m{
		"name":                  "Membership",
		"currencyCode":          "KES",
		"amount":                "20.50",
		"chargeAppliesTo":       3,
		"chargeTimeType":        2,
		"chargeCalculationType": 1,
	}
}

func shareCharge(timing, method int) m {
	return m{
		"name":                  "Share fee",
		"currencyCode":          "USD",
		"amount":                1,
		"chargeAppliesTo":       4,
		"chargeTimeType":        timing,
		"chargeCalculationType": method,
	}
}

func requireCodes(t *testing.T, err error, codes ...string) {
	t.Helper()
	f, ok := validation.AsFailure(err)
	require.True(t, ok, "expected *validation.Failure, got %v", err)
	assert.Equal(t, codes, f.Codes())
}

// =============================================================================
// CREATE - VALID PAYLOADS
// =============================================================================

func TestValidateForCreate_ValidPerApplicability(t *testing.T) {
	v := rules.New()

	tests := []struct {
		name    string
		payload *fields.Map
	}{
		{"loan", with(loanCharge(), nil)},
		{"loan tranche percent of disbursement", with(loanCharge(), m{"chargeTimeType": 12, "chargeCalculationType": 5})},
		{"savings withdrawal", with(savingsCharge(5), nil)},
		{"savings weekly", with(savingsCharge(11), nil)},
		{"savings monthly", with(savingsCharge(7), m{"feeOnMonthDay": "--01-15", "feeInterval": 3})},
		{"savings annual", with(savingsCharge(6), m{"feeOnMonthDay": []any{12, 31}})},
		{"client", with(clientCharge(), m{"glAccountId": 44})},
		{"share activation", with(shareCharge(13, 1), nil)},
		{"share purchase percent", with(shareCharge(14, 2), nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.ValidateForCreate(tt.payload))
		})
	}
}

func TestValidateForCreate_ChartReplacesAmount(t *testing.T) {
	// GIVEN: A payload carrying a rate chart and no amount
	in := with(loanCharge(), m{
		"amount": nil,
		"chart":  m{"chartSlabs": []any{m{"fromPeriod": 0, "amount": 1}}},
	})

	// WHEN: It is validated for create
	err := rules.New().ValidateForCreate(in)

	// THEN: The missing top-level amount is not an error
	assert.NoError(t, err)
}

// =============================================================================
// CREATE - STRUCTURAL ERRORS
// =============================================================================

func TestValidateForCreate_EmptyObject_ReportsAllMandatoryFields(t *testing.T) {
	err := rules.New().ValidateForCreate(fields.FromMap(nil))

	requireCodes(t, err,
		"validation.msg.charge.chargeAppliesTo.cannot.be.blank",
		"validation.msg.charge.chargeCalculationType.cannot.be.blank",
		"validation.msg.charge.name.cannot.be.blank",
		"validation.msg.charge.currencyCode.cannot.be.blank",
		"validation.msg.charge.amount.cannot.be.blank",
	)
}

func TestValidateForCreate_NilInput(t *testing.T) {
	err := rules.New().ValidateForCreate(nil)

	assert.ErrorIs(t, err, validation.ErrEmptyInput)
}

func TestValidateForCreate_AccumulatesUnrelatedErrors(t *testing.T) {
	// GIVEN: A bad name and a bad currency code at the same time
	in := with(loanCharge(), m{"name": "   ", "currencyCode": "DOLLAR"})

	// WHEN: Validated
	err := rules.New().ValidateForCreate(in)

	// THEN: Both are reported together
	requireCodes(t, err,
		"validation.msg.charge.name.cannot.be.blank",
		"validation.msg.charge.currencyCode.exceeds.max.length",
	)
}

func TestValidateForCreate_UnknownApplicability(t *testing.T) {
	err := rules.New().ValidateForCreate(with(loanCharge(), m{"chargeAppliesTo": 9}))

	requireCodes(t, err, "validation.msg.charge.chargeAppliesTo.is.not.one.of.expected.enumerations")
}

func TestValidateForCreate_Loan(t *testing.T) {
	v := rules.New()

	tests := []struct {
		name      string
		overrides m
		codes     []string
	}{
		{
			name:      "timing missing",
			overrides: m{"chargeTimeType": nil},
			codes:     []string{"validation.msg.charge.chargeTimeType.cannot.be.blank"},
		},
		{
			name:      "savings timing",
			overrides: m{"chargeTimeType": 5},
			codes:     []string{"validation.msg.charge.chargeTimeType.is.not.one.of.expected.enumerations"},
		},
		{
			name:      "payment mode missing",
			overrides: m{"chargePaymentMode": nil},
			codes:     []string{"validation.msg.charge.chargePaymentMode.cannot.be.blank"},
		},
		{
			name:      "payment mode unknown",
			overrides: m{"chargePaymentMode": 3},
			codes:     []string{"validation.msg.charge.chargePaymentMode.is.not.one.of.expected.enumerations"},
		},
		{
			name:      "percent of disbursement outside tranche",
			overrides: m{"chargeTimeType": 2, "chargeCalculationType": 5},
			codes:     []string{"validation.msg.charge.chargeCalculationType.is.one.of.unwanted.enumerations"},
		},
		{
			name:      "tranche with percent of amount",
			overrides: m{"chargeTimeType": 12, "chargeCalculationType": 2},
			codes:     []string{"validation.msg.charge.chargeCalculationType.is.not.one.of.expected.enumerations"},
		},
		{
			name:      "unknown method",
			overrides: m{"chargeCalculationType": 7},
			codes:     []string{"validation.msg.charge.chargeCalculationType.is.not.one.of.expected.enumerations"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCodes(t, v.ValidateForCreate(with(loanCharge(), tt.overrides)), tt.codes...)
		})
	}
}

func TestValidateForCreate_Savings(t *testing.T) {
	v := rules.New()

	tests := []struct {
		name    string
		payload *fields.Map
		codes   []string
	}{
		{
			name:    "weekly fee with month day",
			payload: with(savingsCharge(11), m{"feeOnMonthDay": "--01-15"}),
			codes:   []string{"validation.msg.charge.feeOnMonthDay.cannot.also.be.provided.when.chargeTimeType.is.11"},
		},
		{
			name:    "monthly fee without schedule",
			payload: with(savingsCharge(7), nil),
			codes: []string{
				"validation.msg.charge.feeOnMonthDay.cannot.be.blank",
				"validation.msg.charge.feeInterval.cannot.be.blank",
			},
		},
		{
			name:    "monthly fee interval above twelve",
			payload: with(savingsCharge(7), m{"feeOnMonthDay": "--01-15", "feeInterval": 13}),
			codes:   []string{"validation.msg.charge.feeInterval.is.not.within.expected.range"},
		},
		{
			name:    "annual fee without month day",
			payload: with(savingsCharge(6), nil),
			codes:   []string{"validation.msg.charge.feeOnMonthDay.cannot.be.blank"},
		},
		{
			name:    "loan only method",
			payload: with(savingsCharge(5), m{"chargeCalculationType": 3}),
			codes:   []string{"validation.msg.charge.chargeCalculationType.is.not.one.of.expected.enumerations"},
		},
		{
			name:    "loan timing",
			payload: with(savingsCharge(1), nil),
			codes:   []string{"validation.msg.charge.chargeTimeType.is.not.one.of.expected.enumerations"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCodes(t, v.ValidateForCreate(tt.payload), tt.codes...)
		})
	}
}

func TestValidateForCreate_Client(t *testing.T) {
	v := rules.New()

	requireCodes(t, v.ValidateForCreate(with(clientCharge(), m{"glAccountId": 0})),
		"validation.msg.charge.glAccountId.not.greater.than.zero")
	requireCodes(t, v.ValidateForCreate(with(clientCharge(), m{"chargeCalculationType": 2})),
		"validation.msg.charge.chargeCalculationType.is.not.one.of.expected.enumerations")
	requireCodes(t, v.ValidateForCreate(with(clientCharge(), m{"chargeTimeType": 1})),
		"validation.msg.charge.chargeTimeType.is.not.one.of.expected.enumerations")
}

func TestValidateForCreate_ShareActivationRestrictsMethod(t *testing.T) {
	// GIVEN: Percent of amount, legal for shares but not for activation
	in := with(shareCharge(13, 2), nil)

	// WHEN: Validated
	err := rules.New().ValidateForCreate(in)

	// THEN: Only the activation subset rejects it
	requireCodes(t, err, "validation.msg.charge.chargeCalculationType.is.not.one.of.expected.enumerations")
}

func TestValidateForCreate_SettingsBlocks(t *testing.T) {
	v := rules.New()

	tests := []struct {
		name      string
		overrides m
		codes     []string
	}{
		{
			name:      "fee frequency requires interval",
			overrides: m{"feeFrequency": 2},
			codes:     []string{"validation.msg.charge.feeInterval.cannot.be.blank"},
		},
		{
			name:      "fee frequency out of range",
			overrides: m{"feeFrequency": 4, "feeInterval": 1},
			codes:     []string{"validation.msg.charge.feeFrequency.is.not.within.expected.range"},
		},
		{
			name:      "free withdrawal enabled without frequencies",
			overrides: m{"enableFreeWithdrawalCharge": true, "freeWithdrawalFrequency": 0, "restartCountFrequency": -1},
			codes: []string{
				"validation.msg.charge.freeWithdrawalFrequency.not.greater.than.zero",
				"validation.msg.charge.restartCountFrequency.not.greater.than.zero",
			},
		},
		{
			name:      "free withdrawal disabled ignores frequencies",
			overrides: m{"enableFreeWithdrawalCharge": false, "freeWithdrawalFrequency": 0},
		},
		{
			name:      "payment type enabled with bad id",
			overrides: m{"enablePaymentType": true, "paymentTypeId": 0},
			codes:     []string{"validation.msg.charge.paymentTypeId.not.greater.than.zero"},
		},
		{
			name:      "null penalty",
			overrides: m{"penalty": explicitNull},
			codes:     []string{"validation.msg.charge.penalty.cannot.be.blank"},
		},
		{
			name:      "caps must be positive",
			overrides: m{"minCap": 0, "maxCap": "-1"},
			codes: []string{
				"validation.msg.charge.minCap.not.greater.than.zero",
				"validation.msg.charge.maxCap.not.greater.than.zero",
			},
		},
		{
			name:      "tax group must be positive",
			overrides: m{"taxGroupId": 0},
			codes:     []string{"validation.msg.charge.taxGroupId.not.greater.than.zero"},
		},
		{
			name:      "amount must be positive",
			overrides: m{"amount": "0"},
			codes:     []string{"validation.msg.charge.amount.not.greater.than.zero"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateForCreate(with(loanCharge(), tt.overrides))
			if len(tt.codes) == 0 {
				assert.NoError(t, err)
				return
			}
			requireCodes(t, err, tt.codes...)
		})
	}
}

func TestValidateForCreate_MalformedValueReportedOnce(t *testing.T) {
	// GIVEN: An amount that is not a number and an applicability that is not an integer
	in := with(loanCharge(), m{"amount": "ten", "chargeAppliesTo": "loan"})

	// WHEN: Validated
	err := rules.New().ValidateForCreate(in)

	// THEN: Each is reported as malformed, with no follow-up errors on either
	requireCodes(t, err,
		"validation.msg.charge.chargeAppliesTo.invalid.format",
		"validation.msg.charge.amount.invalid.format",
	)
}

func TestValidateForCreate_OversizedCodeIsMalformed(t *testing.T) {
	// GIVEN: A loan payload whose applicability is 2^64 + 1
	in, err := fields.ParseJSON([]byte(`{"name": "Processing fee", "currencyCode": "USD", "amount": 100,
		"chargeAppliesTo": 18446744073709551617, "chargeTimeType": 1, "chargeCalculationType": 1,
		"chargePaymentMode": 0}`))
	require.NoError(t, err)

	// WHEN: Validated
	err = rules.New().ValidateForCreate(in)

	// THEN: It is reported as malformed rather than read as applicability 1
	requireCodes(t, err, "validation.msg.charge.chargeAppliesTo.invalid.format")
}

// =============================================================================
// SCHEMA CLOSURE
// =============================================================================

func TestValidateForCreate_UnsupportedParameterRejectedFirst(t *testing.T) {
	// GIVEN: An otherwise invalid payload with an unknown field
	in := fields.FromMap(m{"name": "", "colour": "red", "amount": -1})

	// WHEN: Validated for create and update
	for _, err := range []error{rules.New().ValidateForCreate(in), rules.New().ValidateForUpdate(in)} {
		// THEN: Only the schema error is returned
		var unsupported *validation.UnsupportedParameterError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, []string{"colour"}, unsupported.Names)
		_, isFailure := validation.AsFailure(err)
		assert.False(t, isFailure)
	}
}

func TestSupportedParameters(t *testing.T) {
	names := rules.SupportedParameters()

	assert.Len(t, names, 29)
	assert.Contains(t, names, "glAccountId")
	assert.Contains(t, names, "chart")
	assert.True(t, rules.IsSupportedParameter("locale"))
	assert.False(t, rules.IsSupportedParameter("chartSlabs"))
}
