package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/charge-engine/charge"
	"github.com/warp/charge-engine/validation"
	"gopkg.in/yaml.v3"
)

// Map is an Extractor over a decoded payload object.
type Map struct {
	values map[string]any
}

var _ Extractor = (*Map)(nil)

// FromMap wraps an already-decoded object. The map is not copied and must
// not be modified while the Map is in use.
func FromMap(values map[string]any) *Map {
	if values == nil {
		values = map[string]any{}
	}
	return &Map{values: values}
}

// ParseJSON decodes a JSON object. Blank input and a bare null are
// validation.ErrEmptyInput.
func ParseJSON(data []byte) (*Map, error) {
	if isBlank(data) {
		return nil, validation.ErrEmptyInput
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidFormat, err)
	}
	if values == nil {
		return nil, validation.ErrEmptyInput
	}
	return FromMap(values), nil
}

// ParseYAML decodes a YAML mapping, for payload files written by hand.
func ParseYAML(data []byte) (*Map, error) {
	if isBlank(data) {
		return nil, validation.ErrEmptyInput
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidFormat, err)
	}
	if values == nil {
		return nil, validation.ErrEmptyInput
	}
	return FromMap(values), nil
}

func isBlank(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Names returns the present field names, sorted.
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.values))
	for k := range m.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether the field is present.
func (m *Map) Exists(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Raw returns the undecoded value of a field.
func (m *Map) Raw(name string) any {
	return m.values[name]
}

// =============================================================================
// SCALAR EXTRACTION
// =============================================================================

// Int reads a whole number. Fractional values are a format error.
func (m *Map) Int(name string) (*int64, error) {
	v, ok := m.values[name]
	if !ok || isNull(v) {
		return nil, nil
	}
	n, ok := toInt64(v)
	if !ok {
		return nil, &FormatError{Field: name, Want: "integer", Value: v}
	}
	return &n, nil
}

// Decimal reads an exact decimal number.
func (m *Map) Decimal(name string) (*decimal.Decimal, error) {
	v, ok := m.values[name]
	if !ok || isNull(v) {
		return nil, nil
	}
	d, ok := toDecimal(v)
	if !ok {
		return nil, &FormatError{Field: name, Want: "decimal", Value: v}
	}
	return &d, nil
}

// Bool reads a boolean; the strings "true" and "false" are accepted.
func (m *Map) Bool(name string) (*bool, error) {
	v, ok := m.values[name]
	if !ok || isNull(v) {
		return nil, nil
	}
	switch b := v.(type) {
	case bool:
		return &b, nil
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return &parsed, nil
		}
	}
	return nil, &FormatError{Field: name, Want: "boolean", Value: v}
}

// String reads a string. Numbers are rendered in their literal form.
func (m *Map) String(name string) (*string, error) {
	v, ok := m.values[name]
	if !ok || v == nil {
		return nil, nil
	}
	switch s := v.(type) {
	case string:
		return &s, nil
	case json.Number:
		str := s.String()
		return &str, nil
	case int, int64, float64:
		str := fmt.Sprint(s)
		return &str, nil
	}
	return nil, &FormatError{Field: name, Want: "string", Value: v}
}

var monthDayPattern = regexp.MustCompile(`^(?:--)?(\d{1,2})-(\d{1,2})$`)

// MonthDay reads "--MM-DD", "MM-DD" or a [month, day] pair. A blank string
// extracts as nil.
func (m *Map) MonthDay(name string) (*charge.MonthDay, error) {
	v, ok := m.values[name]
	if !ok || v == nil {
		return nil, nil
	}
	fail := &FormatError{Field: name, Want: "month-day", Value: v}

	var month, day int64
	switch raw := v.(type) {
	case string:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, nil
		}
		parts := monthDayPattern.FindStringSubmatch(s)
		if parts == nil {
			return nil, fail
		}
		month, _ = strconv.ParseInt(parts[1], 10, 64)
		day, _ = strconv.ParseInt(parts[2], 10, 64)
	case []any:
		if len(raw) != 2 {
			return nil, fail
		}
		var okM, okD bool
		month, okM = toInt64(raw[0])
		day, okD = toInt64(raw[1])
		if !okM || !okD {
			return nil, fail
		}
	default:
		return nil, fail
	}

	md, err := charge.NewMonthDay(time.Month(month), int(day))
	if err != nil {
		return nil, fail
	}
	return &md, nil
}

// =============================================================================
// RATE CHART
// =============================================================================

// Slabs decodes a rate chart. The field may hold {"chartSlabs": [...]} or
// the slab array itself. An absent or null field yields no slabs.
func (m *Map) Slabs(name string) ([]charge.Slab, error) {
	v, ok := m.values[name]
	if !ok || v == nil {
		return nil, nil
	}
	if obj, isObj := v.(map[string]any); isObj {
		v = obj["chartSlabs"]
		if v == nil {
			return nil, nil
		}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &FormatError{Field: name, Want: "slab list", Value: v}
	}

	slabs := make([]charge.Slab, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &FormatError{Field: fmt.Sprintf("%s[%d]", name, i), Want: "slab", Value: item}
		}
		slab, err := slabFrom(FromMap(obj))
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		slabs = append(slabs, slab)
	}
	return slabs, nil
}

func slabFrom(m *Map) (charge.Slab, error) {
	var s charge.Slab
	from, err := m.Int("fromPeriod")
	if err != nil {
		return s, err
	}
	to, err := m.Int("toPeriod")
	if err != nil {
		return s, err
	}
	amount, err := m.Decimal("amount")
	if err != nil {
		return s, err
	}
	s.FromPeriod = intFrom(from)
	s.ToPeriod = intFrom(to)
	if amount != nil {
		s.Amount = *amount
	}
	return s, nil
}

func intFrom(p *int64) *int {
	if p == nil {
		return nil
	}
	n := int(*p)
	return &n
}

// =============================================================================
// NUMBER COERCION
// =============================================================================

// isNull treats a blank string like null for non-string fields.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= -math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		return parseInt(n.String())
	case string:
		return parseInt(strings.TrimSpace(n))
	}
	return 0, false
}

func parseInt(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || !d.BigInt().IsInt64() {
		return 0, false
	}
	return d.IntPart(), true
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}
