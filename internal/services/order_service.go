package services

import (
	"context"
	"fmt"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/logging"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
)

const DefaultOrderPageSize = 20

// OrderService owns the order lifecycle: the authoritative status machine,
// the append-only timeline, and the query surface for both the admin
// console and customer order tracking.
type OrderService struct {
	Repo     OrderStore
	Payments PaymentStore
}

func NewOrderService(r OrderStore, pr PaymentStore) *OrderService {
	return &OrderService{Repo: r, Payments: pr}
}

// Get returns one order with items and timeline.
func (s *OrderService) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return s.Repo.GetByID(ctx, orderID)
}

// GetByNumber is the customer tracking view.
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return s.Repo.GetByNumber(ctx, orderNumber)
}

// ListForCustomer returns the customer's own orders.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.Repo.ListForCustomer(ctx, customerID)
}

// List backs the admin console: status filter, free-text search over order
// number and email, fixed-size pages.
func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) ([]model.Order, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, ErrUnknownStatus
	}
	if f.Limit <= 0 || f.Limit > DefaultOrderPageSize {
		f.Limit = DefaultOrderPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.Repo.List(ctx, f)
}

// UpdateStatus applies one transition of the order state machine.
//
// The order row is locked for the duration of the transaction, and the
// transition is validated against the status read under that lock, so
// concurrent admin commands serialize: the first valid one wins and the
// loser is rejected with ErrInvalidTransition. On an invalid transition the
// order and its timeline are left untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, next model.OrderStatus, note *string) error {
	if !next.Valid() {
		return ErrUnknownStatus
	}

	tx, err := s.Repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	current, payStatus, err := s.Repo.GetStatusForUpdateTx(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if !current.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
	}

	if err := s.Repo.SetStatusTx(ctx, tx, orderID, next); err != nil {
		return err
	}
	if err := s.Repo.AppendEventTx(ctx, tx, orderID, next, note); err != nil {
		return err
	}

	// cancelling a paid order refunds the payment
	if next == model.OrderCancelled && payStatus == model.PaymentPaid {
		if err := s.Repo.SetPaymentStatusTx(ctx, tx, orderID, model.PaymentRefunded); err != nil {
			return err
		}
		if err := s.Payments.MarkRefundedTx(ctx, tx, orderID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	logging.FromCtx(ctx).Info("order status updated",
		"order_id", orderID, "from", current.String(), "to", next.String())
	return nil
}
