package model

import (
	"github.com/shopspring/decimal"
)

// CartLine is a single line in the session cart. UnitPrice is snapshotted
// at add time and does not follow later catalog changes.
type CartLine struct {
	LineID      string          `json:"lineid"`
	ProductID   int64           `json:"productid"`
	VariantID   *int64          `json:"variantid,omitempty"`
	Name        string          `json:"name"`
	VariantName string          `json:"variantname,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitprice"`
	Quantity    int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered collection of lines for one shopping session.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	PromoCode string     `json:"promocode,omitempty"`
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// FindLine returns the line with the given id, or nil.
func (c *Cart) FindLine(lineID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// CartResponse is returned when calling GET /merch-store/cart.
type CartResponse struct {
	Items  []CartItemView `json:"items"`
	Promo  string         `json:"promo,omitempty"`
	Totals Totals         `json:"totals"`
}

// CartItemView is what the API exposes per line.
type CartItemView struct {
	LineID      string          `json:"lineid"`
	ProductID   int64           `json:"productid"`
	VariantID   *int64          `json:"variantid,omitempty"`
	Name        string          `json:"name"`
	VariantName string          `json:"variantname,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitprice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"linetotal"`
}
