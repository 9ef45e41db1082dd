package charge

// =============================================================================
// PAYMENT MODE - Collection channel, loan charges only
// =============================================================================

// PaymentMode is how a loan charge is collected. Its zero value is a legal
// variant, so lookups report legality with an explicit ok result.
type PaymentMode int

const (
	PaymentRegular PaymentMode = iota
	PaymentAccountTransfer
)

var paymentModeNames = map[PaymentMode]string{
	PaymentRegular:         "REGULAR",
	PaymentAccountTransfer: "ACCOUNT_TRANSFER",
}

// PaymentModeValues returns the legal raw payment mode codes.
func PaymentModeValues() []int {
	return codesOf([]PaymentMode{PaymentRegular, PaymentAccountTransfer})
}

// PaymentModeFromCode maps a raw code, failing on codes outside PaymentModeValues.
func PaymentModeFromCode(code int) (PaymentMode, error) {
	p, ok := PaymentModeOf(code)
	if !ok {
		return PaymentRegular, &UnknownCodeError{Category: "chargePaymentMode", Code: code}
	}
	return p, nil
}

// PaymentModeOf maps a raw code and reports whether it is legal.
func PaymentModeOf(code int) (PaymentMode, bool) {
	p := PaymentMode(code)
	_, ok := paymentModeNames[p]
	return p, ok
}

func (p PaymentMode) Value() int { return int(p) }

func (p PaymentMode) String() string {
	if name, ok := paymentModeNames[p]; ok {
		return name
	}
	return "INVALID"
}

func (p PaymentMode) IsAccountTransfer() bool { return p == PaymentAccountTransfer }

// =============================================================================
// FEE FREQUENCY - Period unit of a recurring fee
// =============================================================================

// FeeFrequency is the period unit used together with a fee interval.
type FeeFrequency int

const (
	FrequencyDays FeeFrequency = iota
	FrequencyWeeks
	FrequencyMonths
	FrequencyYears
)

var feeFrequencyNames = map[FeeFrequency]string{
	FrequencyDays:   "DAYS",
	FrequencyWeeks:  "WEEKS",
	FrequencyMonths: "MONTHS",
	FrequencyYears:  "YEARS",
}

// Bounds of the legal fee frequency codes, inclusive.
const (
	MinFeeFrequency = int(FrequencyDays)
	MaxFeeFrequency = int(FrequencyYears)
)

// FeeFrequencyValues returns the legal raw fee frequency codes.
func FeeFrequencyValues() []int {
	return codesOf([]FeeFrequency{FrequencyDays, FrequencyWeeks, FrequencyMonths, FrequencyYears})
}

// FeeFrequencyFromCode maps a raw code, failing on codes outside FeeFrequencyValues.
func FeeFrequencyFromCode(code int) (FeeFrequency, error) {
	f := FeeFrequency(code)
	if _, ok := feeFrequencyNames[f]; !ok {
		return FrequencyDays, &UnknownCodeError{Category: "feeFrequency", Code: code}
	}
	return f, nil
}

func (f FeeFrequency) Value() int { return int(f) }

func (f FeeFrequency) String() string {
	if name, ok := feeFrequencyNames[f]; ok {
		return name
	}
	return "INVALID"
}
