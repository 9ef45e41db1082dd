/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures of the charge validation API. Charge payloads
  themselves are read through fields.Map, because the validator needs to see
  which fields were sent; only the fixed-shape bodies get a struct here.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Wrappers around several DTOs

SEE ALSO:
  - handlers.go: Uses these types
  - charge/definition.go: The Definition a ChargeDTO is built from
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// TimingCheckRequest asks whether a timing and a calculation method combine.
type TimingCheckRequest struct {
	ChargeTimeType        *int `json:"chargeTimeType"`
	ChargeCalculationType *int `json:"chargeCalculationType"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CodeDTO is one enumeration entry.
type CodeDTO struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Value string `json:"value"`
}

// ChargeDTO is an assembled charge definition.
type ChargeDTO struct {
	Name                    string           `json:"name"`
	CurrencyCode            string           `json:"currencyCode"`
	Amount                  decimal.Decimal  `json:"amount"`
	ChargeAppliesTo         CodeDTO          `json:"chargeAppliesTo"`
	ChargeTimeType          CodeDTO          `json:"chargeTimeType"`
	ChargeCalculationType   CodeDTO          `json:"chargeCalculationType"`
	ChargePaymentMode       *CodeDTO         `json:"chargePaymentMode,omitempty"`
	Penalty                 bool             `json:"penalty"`
	Active                  bool             `json:"active"`
	FeeOnMonthDay           *string          `json:"feeOnMonthDay,omitempty"`
	FeeInterval             *int             `json:"feeInterval,omitempty"`
	FeeFrequency            *CodeDTO         `json:"feeFrequency,omitempty"`
	MinCap                  *decimal.Decimal `json:"minCap,omitempty"`
	MaxCap                  *decimal.Decimal `json:"maxCap,omitempty"`
	MinAmount               *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount               *decimal.Decimal `json:"maxAmount,omitempty"`
	FreeWithdrawal          bool             `json:"freeWithdrawal"`
	FreeWithdrawalFrequency int              `json:"freeWithdrawalChargeFrequency,omitempty"`
	RestartCountFrequency   int              `json:"restartFrequency,omitempty"`
	CountFrequencyType      int              `json:"restartFrequencyEnum,omitempty"`
	EnablePaymentType       bool             `json:"isPaymentType"`
	PaymentTypeID           int64            `json:"paymentTypeId,omitempty"`
	GLAccountID             *int64           `json:"incomeOrLiabilityAccountId,omitempty"`
	TaxGroupID              *int64           `json:"taxGroupId,omitempty"`
	VaryAmounts             bool             `json:"varyAmounts"`
	ChartSlabs              []SlabDTO        `json:"chartSlabs,omitempty"`
}

// SlabDTO is one rate chart row.
type SlabDTO struct {
	FromPeriod *int            `json:"fromPeriod"`
	ToPeriod   *int            `json:"toPeriod"`
	Amount     decimal.Decimal `json:"amount"`
}

// ValidationResultDTO reports a payload that passed every check.
type ValidationResultDTO struct {
	Valid      bool     `json:"valid"`
	Parameters []string `json:"parameters,omitempty"`
}

// OptionsDTO lists the legal codes for one applicability.
type OptionsDTO struct {
	ChargeAppliesTo        CodeDTO   `json:"chargeAppliesTo"`
	ChargeTimeTypes        []CodeDTO `json:"chargeTimeTypeOptions"`
	ChargeCalculationTypes []CodeDTO `json:"chargeCalculationTypeOptions"`
}

// OptionsResponse is the full lookup of legal enumeration codes.
type OptionsResponse struct {
	Charges            []OptionsDTO `json:"charges"`
	ChargePaymentModes []CodeDTO    `json:"chargePaymentModeOptions"`
	FeeFrequencies     []CodeDTO    `json:"feeFrequencyOptions"`
}

// ErrorDTO is one failed check.
type ErrorDTO struct {
	Parameter string `json:"parameterName"`
	Code      string `json:"userMessageGlobalisationCode"`
	Message   string `json:"defaultUserMessage"`
	Value     any    `json:"value,omitempty"`
	Args      []any  `json:"args,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string     `json:"error"`
	Code    string     `json:"code,omitempty"`
	Details any        `json:"details,omitempty"`
	Errors  []ErrorDTO `json:"errors,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toChargeDTO(d *charge.Definition) ChargeDTO {
	dto := ChargeDTO{
		Name:                    d.Name,
		CurrencyCode:            d.CurrencyCode,
		Amount:                  d.Amount,
		ChargeAppliesTo:         CodeDTO{ID: d.AppliesTo.Value(), Code: d.AppliesTo.Code(), Value: d.AppliesTo.String()},
		ChargeTimeType:          timingDTO(d.Timing),
		ChargeCalculationType:   methodDTO(d.Method),
		Penalty:                 d.Penalty,
		Active:                  d.Active,
		FeeInterval:             d.FeeInterval,
		MinCap:                  d.MinCap,
		MaxCap:                  d.MaxCap,
		MinAmount:               d.MinAmount,
		MaxAmount:               d.MaxAmount,
		FreeWithdrawal:          d.FreeWithdrawal.Enabled,
		FreeWithdrawalFrequency: d.FreeWithdrawal.Frequency,
		RestartCountFrequency:   d.FreeWithdrawal.RestartFrequency,
		CountFrequencyType:      d.FreeWithdrawal.CountFrequencyType,
		EnablePaymentType:       d.PaymentType.Enabled,
		PaymentTypeID:           d.PaymentType.PaymentTypeID,
		GLAccountID:             d.GLAccountID,
		TaxGroupID:              d.TaxGroupID,
		VaryAmounts:             d.VaryAmounts,
	}
	if d.PaymentMode != nil {
		mode := paymentModeDTO(*d.PaymentMode)
		dto.ChargePaymentMode = &mode
	}
	if d.FeeOnMonthDay != nil {
		s := d.FeeOnMonthDay.String()
		dto.FeeOnMonthDay = &s
	}
	if d.FeeFrequency != nil {
		freq := feeFrequencyDTO(*d.FeeFrequency)
		dto.FeeFrequency = &freq
	}
	for _, s := range d.Slabs {
		dto.ChartSlabs = append(dto.ChartSlabs, SlabDTO{FromPeriod: s.FromPeriod, ToPeriod: s.ToPeriod, Amount: s.Amount})
	}
	return dto
}

func timingDTO(t charge.Timing) CodeDTO {
	return CodeDTO{ID: t.Value(), Code: t.Code(), Value: t.String()}
}

func methodDTO(m charge.CalculationMethod) CodeDTO {
	return CodeDTO{ID: m.Value(), Code: m.Code(), Value: m.String()}
}

func paymentModeDTO(p charge.PaymentMode) CodeDTO {
	return CodeDTO{ID: p.Value(), Code: "chargepaymentmode." + p.String(), Value: p.String()}
}

func feeFrequencyDTO(f charge.FeeFrequency) CodeDTO {
	return CodeDTO{ID: f.Value(), Code: "feeFrequencyperiodFrequencyType." + f.String(), Value: f.String()}
}

func toErrorDTOs(errs []validation.Error) []ErrorDTO {
	dtos := make([]ErrorDTO, len(errs))
	for i, e := range errs {
		dtos[i] = ErrorDTO{
			Parameter: e.Parameter,
			Code:      e.Code,
			Message:   e.Message,
			Value:     e.Value,
			Args:      e.Args,
		}
	}
	return dtos
}

func buildOptions() OptionsResponse {
	var resp OptionsResponse
	for _, a := range charge.Applicabilities() {
		opts := OptionsDTO{
			ChargeAppliesTo: CodeDTO{ID: a.Value(), Code: a.Code(), Value: a.String()},
		}
		for _, t := range charge.TimingsFor(a) {
			opts.ChargeTimeTypes = append(opts.ChargeTimeTypes, timingDTO(t))
		}
		for _, m := range charge.MethodsFor(a) {
			opts.ChargeCalculationTypes = append(opts.ChargeCalculationTypes, methodDTO(m))
		}
		resp.Charges = append(resp.Charges, opts)
	}
	for _, code := range charge.PaymentModeValues() {
		mode, _ := charge.PaymentModeOf(code)
		resp.ChargePaymentModes = append(resp.ChargePaymentModes, paymentModeDTO(mode))
	}
	for _, code := range charge.FeeFrequencyValues() {
		freq, _ := charge.FeeFrequencyFromCode(code)
		resp.FeeFrequencies = append(resp.FeeFrequencies, feeFrequencyDTO(freq))
	}
	return resp
}
