package model

import "github.com/shopspring/decimal"

// ShippingMethod is a selectable delivery option from the shippingmethods table.
type ShippingMethod struct {
	MethodID int64           `json:"methodid"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Cost     decimal.Decimal `json:"cost"`
	Estimate string          `json:"estimate"`
	Active   bool            `json:"active"`
}
