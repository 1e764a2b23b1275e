package services

import (
	"context"

	mt "github.com/Project2Studios/panickin-skywalker-enhanced-sub003/external/midtrans"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"

	"github.com/jackc/pgx/v5"
)

// ProductCatalog is what the cart needs from the product side.
type ProductCatalog interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	GetVariant(ctx context.Context, productID, variantID int64) (*model.ProductVariant, error)
}

// PromoLookup resolves promo codes to their rules.
type PromoLookup interface {
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

// ShippingLookup resolves shipping methods.
type ShippingLookup interface {
	ListActive(ctx context.Context) ([]model.ShippingMethod, error)
	GetByCode(ctx context.Context, code string) (*model.ShippingMethod, error)
}

// EmailValidator screens newsletter signups. Implementations: the local
// regex check or the AbstractAPI reputation service, picked by config.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// Mailer sends transactional mail.
type Mailer interface {
	SendNewsletterConfirmation(ctx context.Context, toEmail, confirmURL string) error
}

// CustomerLookup resolves the customer row for an authenticated shopper.
type CustomerLookup interface {
	GetByAuthID(ctx context.Context, authID int64) (*model.Customer, error)
}

// PaymentGateway opens hosted payment sessions and authenticates webhook
// notifications. Card data never reaches this service; the gateway's hosted
// page collects it and we only see tokens and references.
type PaymentGateway interface {
	CreateTransaction(ref string, grossAmount int64, email string) (*mt.PaymentSession, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

// OrderStore is the order persistence surface the order and payment services
// drive. Tx methods run inside a transaction opened with Begin.
type OrderStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error)
	InsertItemsTx(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderItem) error
	AppendEventTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, note *string) error
	GetStatusForUpdateTx(ctx context.Context, tx pgx.Tx, orderID int64) (model.OrderStatus, model.PaymentStatus, error)
	SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus) error
	SetPaymentStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.PaymentStatus) error
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	List(ctx context.Context, f repository.OrderFilter) ([]model.Order, int, error)
}

// PaymentStore tracks gateway charge attempts keyed by checkout ref.
type PaymentStore interface {
	CreatePending(ctx context.Context, checkoutRef, sessionID string, totals model.Totals, provider string, payload []byte) (int64, error)
	GetByCheckoutRef(ctx context.Context, checkoutRef string) (*model.Payment, error)
	MarkPaidTx(ctx context.Context, tx pgx.Tx, checkoutRef string, orderID int64, providerRef string, payload []byte) error
	MarkFailed(ctx context.Context, checkoutRef string, payload []byte) error
	MarkRefundedTx(ctx context.Context, tx pgx.Tx, orderID int64) error
}
