package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on accepted decimals. Values outside them are treated as unparsable
// so exponent alignment never expands an operand past a few hundred digits.
const (
	MaxDecimalExponent = 64
	MaxDecimalDigits   = 128
)

// ParseDecimal parses s as an arbitrary-precision decimal. It reports false
// for unparsable input and for values outside the exponent and digit bounds.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > MaxDecimalExponent || exp < -MaxDecimalExponent {
		return decimal.Decimal{}, false
	}
	if d.NumDigits() > MaxDecimalDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Numeric strips whitespace and thousands separators and re-renders the value
// as a fixed-point decimal without superfluous trailing zeros.
func Numeric(value *string) *string {
	if value == nil {
		return nil
	}
	s := strings.ReplaceAll(strings.TrimSpace(*value), ",", "")
	if s == "" {
		return nil
	}

	d, ok := ParseDecimal(s)
	if !ok {
		return nil
	}
	out := d.String()
	return &out
}
