package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mt "github.com/Project2Studios/panickin-skywalker-enhanced-sub003/external/midtrans"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/cache"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/checkout"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/logging"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/google/uuid"
)

var (
	ErrBadSignature   = errors.New("webhook signature mismatch")
	ErrUnknownPayment = errors.New("unknown payment reference")
)

const paymentProvider = "midtrans"

// PaymentService orchestrates the hosted payment flow. StartPayment opens a
// gateway session for the checkout; HandleNotification consumes the webhook
// and is the ONLY place an order is ever created. A declined or abandoned
// payment leaves no order behind, just a failed payments row.
type PaymentService struct {
	Sessions cache.SessionStore
	Cart     *CartService
	Orders   OrderStore
	Payments PaymentStore
	Gateway  PaymentGateway
}

func NewPaymentService(
	sessions cache.SessionStore,
	cart *CartService,
	orders OrderStore,
	payments PaymentStore,
	gateway PaymentGateway,
) *PaymentService {
	return &PaymentService{
		Sessions: sessions,
		Cart:     cart,
		Orders:   orders,
		Payments: payments,
		Gateway:  gateway,
	}
}

// StartPayment opens a hosted payment session for the checkout session.
// The session must be on the payment step with shipping already collected.
// While a gateway session is open further attempts are rejected, so a shopper
// double-clicking "pay" cannot be charged twice.
func (s *PaymentService) StartPayment(ctx context.Context, sessionID string) (*mt.PaymentSession, error) {
	sess, err := s.Cart.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.CurrentStep != checkout.StepPayment {
		return nil, ErrPaymentNotReady
	}
	if len(sess.Cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if sess.PaymentPending {
		return nil, ErrPaymentInFlight
	}

	totals, err := s.Cart.Quote(ctx, sess)
	if err != nil {
		return nil, err
	}

	ref := "CHK-" + uuid.NewString()

	// the gateway takes whole currency units
	ps, err := s.Gateway.CreateTransaction(ref, totals.Total.Round(0).IntPart(), sess.Email)
	if err != nil {
		logging.FromCtx(ctx).Error("gateway session failed",
			"session_id", sess.ID, "reason", string(mt.NormalizeError(err)))
		return nil, err
	}

	if _, err := s.Payments.CreatePending(ctx, ref, sess.ID, totals, paymentProvider, nil); err != nil {
		return nil, err
	}

	sess.CheckoutRef = ref
	sess.PaymentPending = true
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	logging.FromCtx(ctx).Info("payment session opened",
		"session_id", sess.ID, "checkout_ref", ref, "amount", totals.Total.String())
	return ps, nil
}

// HandleNotification processes one gateway webhook. Notifications are
// verified against the signature key, matched to the pending payment by
// checkout ref, and handled idempotently: redelivery of a settled
// notification is a no-op.
func (s *PaymentService) HandleNotification(ctx context.Context, payload map[string]interface{}) error {
	ref := str(payload, "order_id")
	if ref == "" {
		return ErrUnknownPayment
	}

	if !s.Gateway.VerifySignature(ref, str(payload, "status_code"), str(payload, "gross_amount"), str(payload, "signature_key")) {
		return ErrBadSignature
	}

	payment, err := s.Payments.GetByCheckoutRef(ctx, ref)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrUnknownPayment
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	result := mt.Normalize(str(payload, "transaction_status"), str(payload, "fraud_status"), str(payload, "transaction_id"))
	log := logging.FromCtx(ctx).With("checkout_ref", ref, "gateway_status", string(result.Status))

	switch result.Status {
	case mt.StatusSucceeded:
		if payment.Status == model.PaymentPaid {
			log.Info("notification replayed for settled payment")
			return nil
		}
		return s.settle(ctx, payment, result, raw)

	case mt.StatusRequiresAction:
		// the shopper is still inside the hosted flow; a later
		// notification resolves it
		log.Info("payment awaiting shopper action")
		return nil

	default:
		return s.fail(ctx, payment, result, raw)
	}
}

// settle creates the order and marks the payment paid in one transaction,
// then moves the checkout session to confirmation. The order is built from
// the totals snapshotted when the charge was opened, not a fresh quote, so
// a promo expiring mid-payment cannot desync the order from the charge.
func (s *PaymentService) settle(ctx context.Context, payment *model.Payment, result mt.Result, raw []byte) error {
	sess, err := s.Sessions.Get(ctx, payment.SessionID)
	if err != nil {
		return fmt.Errorf("load session %s: %w", payment.SessionID, err)
	}

	order := &model.Order{
		OrderNumber:    newOrderNumber(),
		CustomerID:     sess.CustomerID,
		Email:          sess.Email,
		Status:         model.OrderPending,
		PaymentStatus:  model.PaymentPaid,
		Totals:         payment.Totals,
		ShippingMethod: sess.ShippingMethod,
		ShippingAddr:   sess.ShippingAddr,
		BillingAddr:    sess.BillingAddr,
	}

	items := make([]model.OrderItem, 0, len(sess.Cart.Lines))
	for _, l := range sess.Cart.Lines {
		items = append(items, model.OrderItem{
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			Name:        l.Name,
			VariantName: l.VariantName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal(),
		})
	}

	tx, err := s.Orders.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID, err := s.Orders.CreateTx(ctx, tx, order)
	if err != nil {
		return err
	}
	if err := s.Orders.InsertItemsTx(ctx, tx, orderID, items); err != nil {
		return err
	}
	if err := s.Orders.AppendEventTx(ctx, tx, orderID, model.OrderPending, note("order placed")); err != nil {
		return err
	}

	// payment settled, so the order immediately confirms
	if err := s.Orders.SetStatusTx(ctx, tx, orderID, model.OrderConfirmed); err != nil {
		return err
	}
	if err := s.Orders.AppendEventTx(ctx, tx, orderID, model.OrderConfirmed, note("payment received")); err != nil {
		return err
	}

	if err := s.Payments.MarkPaidTx(ctx, tx, payment.CheckoutRef, orderID, result.TransactionID, raw); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	sess.PaymentPending = false
	sess.PaymentPaid = true
	sess.OrderNumber = order.OrderNumber
	sess.Finish()
	sess.Cart.Lines = nil
	sess.Cart.PromoCode = ""
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return err
	}

	logging.FromCtx(ctx).Info("order created",
		"order_id", orderID, "order_number", order.OrderNumber,
		"checkout_ref", payment.CheckoutRef, "total", payment.Totals.Total.String())
	return nil
}

// fail records the failure and reopens the payment step. The cart survives,
// so the shopper can retry with another card.
func (s *PaymentService) fail(ctx context.Context, payment *model.Payment, result mt.Result, raw []byte) error {
	if err := s.Payments.MarkFailed(ctx, payment.CheckoutRef, raw); err != nil {
		return err
	}

	sess, err := s.Sessions.Get(ctx, payment.SessionID)
	if err == nil {
		sess.PaymentPending = false
		sess.CheckoutRef = ""
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return err
		}
	} else if err != cache.ErrSessionNotFound {
		return err
	}

	logging.FromCtx(ctx).Warn("payment failed",
		"checkout_ref", payment.CheckoutRef, "reason", string(result.Reason))
	return nil
}

// newOrderNumber mints a human-readable order number, e.g. PS-2026-1A2B3C.
func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("PS-%d-%s", time.Now().Year(), id[:6])
}

func note(s string) *string { return &s }

func str(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
