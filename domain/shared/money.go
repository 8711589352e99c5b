package shared

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when callers do not care about multi-currency flows.
const DefaultCurrency = "USD"

// Money is a value object for fixed-scale monetary amounts.
// Amounts are decimals, never floats; all arithmetic returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money from a decimal amount and a currency code.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// NewMoneyFromString parses a decimal string like "199.90".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d, currency: currency}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

// Add returns m + other. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot add money with different currencies")
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. Currencies must match.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errors.New("cannot subtract money with different currencies")
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// MultiplyBy returns m scaled by an integer quantity.
func (m Money) MultiplyBy(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), currency: m.currency}
}

func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }

func (m Money) IsGreaterThan(other Money) bool        { return m.amount.GreaterThan(other.amount) }
func (m Money) IsGreaterThanOrEqual(other Money) bool { return m.amount.GreaterThanOrEqual(other.amount) }
func (m Money) IsLessThan(other Money) bool           { return m.amount.LessThan(other.amount) }

// Equals compares amount and currency. Amount comparison is exact
// decimal equality, 1.5 equals 1.50.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}
