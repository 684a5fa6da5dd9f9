package types

import "github.com/shopspring/decimal"

// Money is a decimal amount that round-trips through the collection documents
// as a bare JSON number, the way the data files have always stored prices.
type Money struct {
	decimal.Decimal
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

func MoneyFromInt(v int64) Money {
	return Money{Decimal: decimal.NewFromInt(v)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// Times returns the amount multiplied by an integer quantity.
func (m Money) Times(quantity int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Plus returns the sum of two amounts.
func (m Money) Plus(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Negative reports whether the amount is below zero.
func (m Money) Negative() bool {
	return m.Decimal.IsNegative()
}
