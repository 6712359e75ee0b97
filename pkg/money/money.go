package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places every Money value is kept at.
const Scale = 2

// Money is a fixed-point currency amount with exactly two decimal places.
// All arithmetic is exact; binary floating point is never involved.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{amount: decimal.Zero}

// New creates a Money from major and minor units, e.g. New(1000, 50) == 1000.50.
func New(units int64, cents int64) Money {
	total := units*100 + cents
	return Money{amount: decimal.New(total, -Scale)}
}

// FromDecimal creates a Money from a decimal, rounding to two places.
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(Scale)}
}

// FromString parses a decimal string like "1000.50".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	if d.Exponent() < -Scale {
		return Zero, fmt.Errorf("money amount %q has more than %d decimal places", s, Scale)
	}
	return Money{amount: d.Round(Scale)}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Cmp compares m and other: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// String renders the amount with exactly two decimal places, e.g. "1000.00".
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}

// MarshalJSON renders the amount as a JSON string to avoid float precision loss.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both string and bare number forms.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer so Money maps to a numeric column.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = Money{amount: d.Round(Scale)}
	return nil
}

// GormDataType tells GORM which column type to use.
func (Money) GormDataType() string {
	return "decimal(10,2)"
}
