package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// orderTransitions is the full transition table. Fulfillment moves strictly
// forward one step at a time; cancellation is only possible before shipping.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

func (s OrderStatus) String() string { return string(s) }

// PaymentStatus tracks payment independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Totals is the derived money breakdown for a cart or order.
// Invariant: Total = Subtotal + Shipping + Tax - Discount, Total >= 0.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Address is a shipping or billing address, stored as jsonb on the order.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalcode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Complete reports whether the required address fields are filled in.
func (a Address) Complete() bool {
	return a.Name != "" && a.Line1 != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// Order represents an entry in the orders table. Line items and totals are
// immutable after creation; only status, payment status and notes change.
type Order struct {
	OrderID        int64         `json:"orderid"`
	OrderNumber    string        `json:"ordernumber"`
	CustomerID     *int64        `json:"customerid,omitempty"`
	Email          string        `json:"email"`
	Status         OrderStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentstatus"`
	Totals         Totals        `json:"totals"`
	ShippingMethod string        `json:"shippingmethod"`
	ShippingAddr   Address       `json:"shippingaddress"`
	BillingAddr    Address       `json:"billingaddress"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Items    []OrderItem  `json:"items,omitempty"`
	Timeline []OrderEvent `json:"timeline,omitempty"`
}

// OrderItem is a price-snapshotted line on a placed order.
type OrderItem struct {
	OrderItemID int64           `json:"orderitemid"`
	OrderID     int64           `json:"orderid"`
	ProductID   int64           `json:"productid"`
	VariantID   *int64          `json:"variantid,omitempty"`
	Name        string          `json:"name"`
	VariantName string          `json:"variantname,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitprice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"linetotal"`
}

// OrderEvent is one entry in the append-only status timeline.
type OrderEvent struct {
	EventID   int64       `json:"eventid"`
	OrderID   int64       `json:"orderid"`
	Status    OrderStatus `json:"status"`
	Note      *string     `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
