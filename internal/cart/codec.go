package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/carrito/internal/domain"
)

// lineRecord is the persisted form of a cart line. The field names are the
// wire contract: payloads written before this service existed used exactly
// id/titulo/precio/cantidad, and those still have to load. moneda was added
// later; absent means USD.
type lineRecord struct {
	ID       int64           `json:"id"`
	Title    string          `json:"titulo"`
	Price    decimal.Decimal `json:"precio"`
	Currency string          `json:"moneda,omitempty"`
	Quantity int             `json:"cantidad"`
}

func encodeCart(c domain.Cart) (string, error) {
	records := make([]lineRecord, 0, len(c.Lines))
	for _, l := range c.Lines {
		records = append(records, lineRecord{
			ID:       l.ProductID,
			Title:    l.Title,
			Price:    l.UnitPrice.Amount,
			Currency: l.UnitPrice.Currency.String(),
			Quantity: l.Quantity,
		})
	}

	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	return string(b), nil
}

func decodeCart(raw string) (domain.Cart, error) {
	var records []lineRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var cart domain.Cart
	for _, r := range records {
		unit := currency.USD
		if r.Currency != "" {
			parsed, err := currency.ParseISO(r.Currency)
			if err != nil {
				return domain.Cart{}, fmt.Errorf("currency[%s] is not valid: %w", r.Currency, err)
			}
			unit = parsed
		}

		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: r.ID,
			Title:     r.Title,
			UnitPrice: domain.Money{Amount: r.Price, Currency: unit},
			Quantity:  r.Quantity,
		})
	}

	if err := cart.Validate(); err != nil {
		return domain.Cart{}, fmt.Errorf("cart.Validate: %w", err)
	}

	return cart, nil
}
