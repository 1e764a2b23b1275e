package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a gateway charge attempt keyed by the checkout reference we
// hand to the gateway. OrderID is filled in once the order exists (an order
// is only created after the gateway reports success). Totals snapshots the
// quote the shopper was actually charged for, so the order built later can
// never drift from the charged amount.
type Payment struct {
	PaymentID       int64           `db:"paymentid" json:"payment_id"`
	CheckoutRef     string          `db:"checkoutref" json:"checkout_ref"`
	SessionID       string          `db:"sessionid" json:"-"`
	OrderID         *int64          `db:"orderid" json:"order_id,omitempty"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Totals          Totals          `db:"totals" json:"totals"`
	Status          PaymentStatus   `db:"paymentstatus" json:"payment_status"`
	Provider        string          `db:"paymentprovider" json:"payment_provider"`
	ProviderRef     *string         `db:"providerref" json:"provider_ref,omitempty"`
	ProviderPayload []byte          `db:"providerpayload" json:"-"`
	CreatedAt       time.Time       `db:"createdat" json:"created_at"`
	PaidAt          *time.Time      `db:"paidat" json:"paid_at,omitempty"`
}
