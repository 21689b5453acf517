package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// USD wraps an amount in the catalog's default currency.
func USD(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: currency.USD}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// MulInt scales the amount at full precision, keeping the currency.
func (m Money) MulInt(n int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(n))),
		Currency: m.Currency,
	}
}

// Display renders the amount rounded to two decimals. Rounding happens
// here and nowhere else, so repeated renders never compound.
func (m Money) Display() string {
	if m.Currency == currency.USD {
		return "$" + m.Amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}
