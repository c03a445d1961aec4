package capi

import "github.com/shopspring/decimal"

// Scale is the number of fractional digits statements are normalized to.
const Scale = 4

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact decimal number of units of an asset. Negative
// quantities represent short positions or sales.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses the string representation of a quantity. Thousands
// separators are stripped; the value is kept exactly as written, use Round
// to normalize it.
func ParseQuantity(s string) (Quantity, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: d}, nil
}

func (t Quantity) Equal(p Quantity) bool       { return t.value.Equal(p.value) }
func (t Quantity) LessThan(p Quantity) bool    { return t.value.LessThan(p.value) }
func (t Quantity) GreaterThan(p Quantity) bool { return t.value.GreaterThan(p.value) }
func (t Quantity) Add(p Quantity) Quantity     { return Quantity{value: t.value.Add(p.value)} }
func (t Quantity) Sub(p Quantity) Quantity     { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) Mul(p Quantity) Quantity     { return Quantity{value: t.value.Mul(p.value)} }
func (t Quantity) Neg() Quantity               { return Quantity{value: t.value.Neg()} }
func (t Quantity) Abs() Quantity               { return Quantity{value: t.value.Abs()} }
func (t Quantity) IsZero() bool                { return t.value.IsZero() }
func (t Quantity) Sign() int                   { return t.value.Sign() }
func (q Quantity) String() string              { return q.value.String() }

// Div divides t by p and normalizes the result to Scale fractional digits
// using banker's rounding.
func (t Quantity) Div(p Quantity) Quantity {
	return Quantity{value: t.value.Div(p.value).RoundBank(Scale)}
}

// Round normalizes the quantity to Scale fractional digits using banker's
// rounding.
func (t Quantity) Round() Quantity { return Quantity{value: t.value.RoundBank(Scale)} }

// StringFixed returns the quantity with exactly Scale fractional digits,
// e.g. "42.0000".
func (t Quantity) StringFixed() string { return t.value.StringFixed(Scale) }

// MarshalJSON implements the json.Marshaler interface.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}
func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return t.value.UnmarshalJSON(decimalBytes)
}
