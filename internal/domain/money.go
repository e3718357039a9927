package domain

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimals every price is stored and served with.
const MoneyScale = 2

// Money is a fixed-scale decimal amount. It is persisted as decimal(10,2)
// and serialized as a JSON number carrying exactly two decimals.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d.Round(MoneyScale)} }

func MustMoney(s string) Money { return NewMoney(decimal.RequireFromString(s)) }

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool { return m.Decimal.GreaterThan(decimal.Zero) }

func (m Money) String() string { return m.Decimal.StringFixed(MoneyScale) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(MoneyScale)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	m.Decimal = d.Round(MoneyScale)
	return nil
}

// Value rounds before writing so the stored scale never depends on the caller.
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.StringFixed(MoneyScale), nil
}

func (m *Money) Scan(v any) error {
	var d decimal.Decimal
	if err := d.Scan(v); err != nil {
		return err
	}
	m.Decimal = d.Round(MoneyScale)
	return nil
}
