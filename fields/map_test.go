package fields_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/fields"
	"github.com/warp/charge-engine/validation"
)

func TestParseJSON_BlankInput(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		_, err := fields.ParseJSON([]byte(body))
		assert.ErrorIs(t, err, validation.ErrEmptyInput, "body %q", body)
	}
}

func TestParseJSON_NotAnObject(t *testing.T) {
	_, err := fields.ParseJSON([]byte(`[1, 2]`))

	assert.ErrorIs(t, err, fields.ErrInvalidFormat)
	assert.True(t, validation.IsInputShape(err))
}

func TestMap_AbsentVersusNull(t *testing.T) {
	// GIVEN: One field explicitly null and one missing
	in, err := fields.ParseJSON([]byte(`{"amount": null}`))
	require.NoError(t, err)

	// WHEN: Both are extracted
	amount, err := in.Decimal("amount")
	require.NoError(t, err)
	minCap, err := in.Decimal("minCap")
	require.NoError(t, err)

	// THEN: Both are nil, but only the null one exists
	assert.Nil(t, amount)
	assert.Nil(t, minCap)
	assert.True(t, in.Exists("amount"))
	assert.False(t, in.Exists("minCap"))
}

func TestMap_Int(t *testing.T) {
	in, err := fields.ParseJSON([]byte(`{
		"a": 12, "b": "7", "c": 3.0, "d": 2.5, "e": "x", "f": ""
	}`))
	require.NoError(t, err)

	a, err := in.Int("a")
	require.NoError(t, err)
	assert.EqualValues(t, 12, *a)

	b, err := in.Int("b")
	require.NoError(t, err)
	assert.EqualValues(t, 7, *b)

	c, err := in.Int("c")
	require.NoError(t, err)
	assert.EqualValues(t, 3, *c)

	_, err = in.Int("d")
	var fe *fields.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "d", fe.Field)

	_, err = in.Int("e")
	assert.ErrorIs(t, err, fields.ErrInvalidFormat)

	f, err := in.Int("f")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestMap_Int_RejectsValuesOutsideInt64(t *testing.T) {
	// GIVEN: Integers just past the signed 64-bit range, as JSON numbers and strings
	in, err := fields.ParseJSON([]byte(`{
		"wraps": 18446744073709551617, "twoTo64": 18446744073709551616,
		"quoted": "9223372036854775808", "max": 9223372036854775807, "min": "-9223372036854775808"
	}`))
	require.NoError(t, err)

	// WHEN: They are read as integers
	// THEN: Out-of-range values are malformed instead of wrapping
	for _, name := range []string{"wraps", "twoTo64", "quoted"} {
		_, err := in.Int(name)
		assert.ErrorIs(t, err, fields.ErrInvalidFormat, name)
	}

	maxVal, err := in.Int("max")
	require.NoError(t, err)
	assert.EqualValues(t, int64(9223372036854775807), *maxVal)

	minVal, err := in.Int("min")
	require.NoError(t, err)
	assert.EqualValues(t, int64(-9223372036854775808), *minVal)
}

func TestMap_Int_RejectsFloatsOutsideInt64(t *testing.T) {
	in := fields.FromMap(map[string]any{
		"twoTo63":    float64(1 << 63),
		"belowMin":   -float64(1<<63) * 2,
		"atMin":      -float64(1 << 63),
		"fractional": 1.5,
	})

	for _, name := range []string{"twoTo63", "belowMin", "fractional"} {
		_, err := in.Int(name)
		assert.ErrorIs(t, err, fields.ErrInvalidFormat, name)
	}

	atMin, err := in.Int("atMin")
	require.NoError(t, err)
	assert.EqualValues(t, int64(-9223372036854775808), *atMin)
}

func TestMap_Decimal_KeepsPrecision(t *testing.T) {
	in, err := fields.ParseJSON([]byte(`{"amount": 10.10, "minCap": "0.005"}`))
	require.NoError(t, err)

	amount, err := in.Decimal("amount")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("10.10")))

	minCap, err := in.Decimal("minCap")
	require.NoError(t, err)
	assert.Equal(t, "0.005", minCap.String())
}

func TestMap_Bool(t *testing.T) {
	in := fields.FromMap(map[string]any{"penalty": true, "active": "false", "bad": 1})

	penalty, err := in.Bool("penalty")
	require.NoError(t, err)
	assert.True(t, *penalty)

	active, err := in.Bool("active")
	require.NoError(t, err)
	assert.False(t, *active)

	_, err = in.Bool("bad")
	assert.ErrorIs(t, err, fields.ErrInvalidFormat)
}

func TestMap_String(t *testing.T) {
	in, err := fields.ParseJSON([]byte(`{"name": "Late fee", "code": 42, "obj": {}}`))
	require.NoError(t, err)

	name, err := in.String("name")
	require.NoError(t, err)
	assert.Equal(t, "Late fee", *name)

	code, err := in.String("code")
	require.NoError(t, err)
	assert.Equal(t, "42", *code)

	_, err = in.String("obj")
	assert.ErrorIs(t, err, fields.ErrInvalidFormat)
}

func TestMap_MonthDay(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *charge.MonthDay
		err   bool
	}{
		{"iso", "--04-15", &charge.MonthDay{Month: time.April, Day: 15}, false},
		{"short", "12-31", &charge.MonthDay{Month: time.December, Day: 31}, false},
		{"pair", []any{2, 29}, &charge.MonthDay{Month: time.February, Day: 29}, false},
		{"blank", "  ", nil, false},
		{"bad day", "--04-31", nil, true},
		{"garbage", "April", nil, true},
		{"short pair", []any{2}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fields.FromMap(map[string]any{"feeOnMonthDay": tt.value})
			got, err := in.MonthDay("feeOnMonthDay")
			if tt.err {
				assert.ErrorIs(t, err, fields.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMap_Names_Sorted(t *testing.T) {
	in := fields.FromMap(map[string]any{"name": "x", "amount": 1, "chargeAppliesTo": 1})

	assert.Equal(t, []string{"amount", "chargeAppliesTo", "name"}, in.Names())
}

func TestMap_Slabs(t *testing.T) {
	// GIVEN: A chart object with one closed, one open and one unbounded-below slab
	in, err := fields.ParseJSON([]byte(`{"chart": {"chartSlabs": [
		{"fromPeriod": 0, "toPeriod": 10, "amount": 5},
		{"fromPeriod": 10, "amount": "7.5"},
		{"toPeriod": 3, "amount": 1}
	]}}`))
	require.NoError(t, err)

	// WHEN: The chart is decoded
	slabs, err := in.Slabs("chart")
	require.NoError(t, err)

	// THEN: Bounds and amounts are carried through
	require.Len(t, slabs, 3)
	assert.Equal(t, "[0, 10)", slabs[0].String())
	assert.True(t, slabs[1].IsOpenEnded())
	assert.True(t, slabs[1].Amount.Equal(decimal.RequireFromString("7.5")))
	assert.False(t, slabs[2].IsValid())
}

func TestMap_Slabs_BareArrayAndErrors(t *testing.T) {
	in := fields.FromMap(map[string]any{
		"chartSlabs": []any{map[string]any{"fromPeriod": 1}},
		"bad":        "nope",
		"badSlab":    []any{map[string]any{"fromPeriod": "x"}},
	})

	slabs, err := in.Slabs("chartSlabs")
	require.NoError(t, err)
	assert.Len(t, slabs, 1)

	_, err = in.Slabs("bad")
	assert.ErrorIs(t, err, fields.ErrInvalidFormat)

	_, err = in.Slabs("badSlab")
	assert.ErrorIs(t, err, fields.ErrInvalidFormat)

	none, err := in.Slabs("missing")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestParseYAML(t *testing.T) {
	in, err := fields.ParseYAML([]byte(`
name: Withdrawal fee
chargeAppliesTo: 2
amount: 1.25
chart:
  chartSlabs:
    - fromPeriod: 0
`))
	require.NoError(t, err)

	applies, err := in.Int("chargeAppliesTo")
	require.NoError(t, err)
	assert.EqualValues(t, 2, *applies)

	amount, err := in.Decimal("amount")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1.25")))

	slabs, err := in.Slabs("chart")
	require.NoError(t, err)
	assert.Len(t, slabs, 1)

	_, err = fields.ParseYAML([]byte("  "))
	assert.ErrorIs(t, err, validation.ErrEmptyInput)
}
