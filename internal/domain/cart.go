package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CartLine is one product entry in the cart. Title and UnitPrice are
// captured when the product is first added and never re-fetched.
type CartLine struct {
	ProductID int64
	Title     string
	UnitPrice Money
	Quantity  int
}

// Subtotal is UnitPrice times Quantity at full precision.
func (l CartLine) Subtotal() Money {
	return l.UnitPrice.MulInt(l.Quantity)
}

// Cart is an ordered sequence of lines, insertion order preserved.
// Invariants: ProductID unique across lines, Quantity >= 1, UnitPrice >= 0.
type Cart struct {
	Lines []CartLine
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Find returns the index of the line holding productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// TotalItemCount sums quantities across all lines, for the badge.
func (c Cart) TotalItemCount() int {
	var total int
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total sums line subtotals at full precision.
func (c Cart) Total() Money {
	total := decimal.Zero
	unit := currency.USD
	for i, l := range c.Lines {
		if i == 0 {
			unit = l.UnitPrice.Currency
		}
		total = total.Add(l.Subtotal().Amount)
	}
	return Money{Amount: total, Currency: unit}
}

// Clone returns a copy whose line slice is independent of the receiver's.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

// Validate checks the cart invariants.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID < 1 {
			return fmt.Errorf("product ID[%d] is not positive", l.ProductID)
		}
		if _, ok := seen[l.ProductID]; ok {
			return fmt.Errorf("product ID[%d] appears on more than one line", l.ProductID)
		}
		seen[l.ProductID] = struct{}{}

		if l.Quantity < 1 {
			return fmt.Errorf("product ID[%d] has quantity %d, want >= 1", l.ProductID, l.Quantity)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("product ID[%d] has negative unit price %s", l.ProductID, l.UnitPrice.Amount)
		}
	}
	return nil
}
