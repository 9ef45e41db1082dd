package rules

import "sort"

// Resource is the resource name every error of this engine is scoped to.
const Resource = "charge"

// Payload field names.
const (
	ParamName                    = "name"
	ParamAmount                  = "amount"
	ParamLocale                  = "locale"
	ParamCurrencyCode            = "currencyCode"
	ParamCurrencyOptions         = "currencyOptions"
	ParamAppliesTo               = "chargeAppliesTo"
	ParamTimeType                = "chargeTimeType"
	ParamCalculationType         = "chargeCalculationType"
	ParamCalculationTypeOptions  = "chargeCalculationTypeOptions"
	ParamPenalty                 = "penalty"
	ParamActive                  = "active"
	ParamPaymentMode             = "chargePaymentMode"
	ParamFeeOnMonthDay           = "feeOnMonthDay"
	ParamFeeInterval             = "feeInterval"
	ParamMonthDayFormat          = "monthDayFormat"
	ParamMinCap                  = "minCap"
	ParamMaxCap                  = "maxCap"
	ParamFeeFrequency            = "feeFrequency"
	ParamEnableFreeWithdrawal    = "enableFreeWithdrawalCharge"
	ParamFreeWithdrawalFrequency = "freeWithdrawalFrequency"
	ParamRestartCountFrequency   = "restartCountFrequency"
	ParamCountFrequencyType      = "countFrequencyType"
	ParamPaymentTypeID           = "paymentTypeId"
	ParamEnablePaymentType       = "enablePaymentType"
	ParamMinAmount               = "minAmount"
	ParamMaxAmount               = "maxAmount"
	ParamChart                   = "chart"
	ParamGLAccountID             = "glAccountId"
	ParamTaxGroupID              = "taxGroupId"

	// ParamFromPeriod is the parameter slab errors are reported under.
	ParamFromPeriod = "fromPeriod"
)

// supportedParameters is the closed schema of create and update payloads.
var supportedParameters = map[string]struct{}{
	ParamName:                    {},
	ParamAmount:                  {},
	ParamLocale:                  {},
	ParamCurrencyCode:            {},
	ParamCurrencyOptions:         {},
	ParamAppliesTo:               {},
	ParamTimeType:                {},
	ParamCalculationType:         {},
	ParamCalculationTypeOptions:  {},
	ParamPenalty:                 {},
	ParamActive:                  {},
	ParamPaymentMode:             {},
	ParamFeeOnMonthDay:           {},
	ParamFeeInterval:             {},
	ParamMonthDayFormat:          {},
	ParamMinCap:                  {},
	ParamMaxCap:                  {},
	ParamFeeFrequency:            {},
	ParamEnableFreeWithdrawal:    {},
	ParamFreeWithdrawalFrequency: {},
	ParamRestartCountFrequency:   {},
	ParamCountFrequencyType:      {},
	ParamPaymentTypeID:           {},
	ParamEnablePaymentType:       {},
	ParamMinAmount:               {},
	ParamMaxAmount:               {},
	ParamChart:                   {},
	ParamGLAccountID:             {},
	ParamTaxGroupID:              {},
}

// SupportedParameters returns the accepted payload field names, sorted.
func SupportedParameters() []string {
	names := make([]string, 0, len(supportedParameters))
	for name := range supportedParameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedParameter reports whether name belongs to the payload schema.
func IsSupportedParameter(name string) bool {
	_, ok := supportedParameters[name]
	return ok
}
