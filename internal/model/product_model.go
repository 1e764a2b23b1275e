package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an entry in the products table (shirts, vinyl, posters...).
type Product struct {
	ProductID   int64           `json:"productid"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	BasePrice   decimal.Decimal `json:"baseprice"`
	ImageURL    *string         `json:"imageurl,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is a purchasable variation of a product (size/color pressing).
// PriceOverride, when set, replaces the product base price.
type ProductVariant struct {
	VariantID     int64            `json:"variantid"`
	ProductID     int64            `json:"productid"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	PriceOverride *decimal.Decimal `json:"priceoverride,omitempty"`
	InStock       bool             `json:"instock"`
}

// UnitPrice resolves the effective price for a variant of p.
func (p *Product) UnitPrice(v *ProductVariant) decimal.Decimal {
	if v != nil && v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return p.BasePrice
}
