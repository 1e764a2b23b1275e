package services

import (
	"context"
	"testing"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx for services that only pass the tx through to the
// store. Commit and Rollback are recorded so tests can assert on them.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                              { return nil }

// fakeOrderStore records every write so tests can assert exactly what a
// service did, and to which transaction.
type fakeOrderStore struct {
	tx        *fakeTx
	status    model.OrderStatus
	payStatus model.PaymentStatus

	nextOrderID int64
	created     []*model.Order
	items       map[int64][]model.OrderItem
	events      []model.OrderEvent
	statusSets  []model.OrderStatus
	paySets     []model.PaymentStatus
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{nextOrderID: 1, items: map[int64][]model.OrderItem{}}
}

func (f *fakeOrderStore) Begin(_ context.Context) (pgx.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

func (f *fakeOrderStore) CreateTx(_ context.Context, _ pgx.Tx, o *model.Order) (int64, error) {
	id := f.nextOrderID
	f.nextOrderID++
	o.OrderID = id
	f.created = append(f.created, o)
	return id, nil
}

func (f *fakeOrderStore) InsertItemsTx(_ context.Context, _ pgx.Tx, orderID int64, items []model.OrderItem) error {
	f.items[orderID] = items
	return nil
}

func (f *fakeOrderStore) AppendEventTx(_ context.Context, _ pgx.Tx, orderID int64, status model.OrderStatus, note *string) error {
	f.events = append(f.events, model.OrderEvent{OrderID: orderID, Status: status, Note: note})
	return nil
}

func (f *fakeOrderStore) GetStatusForUpdateTx(_ context.Context, _ pgx.Tx, _ int64) (model.OrderStatus, model.PaymentStatus, error) {
	return f.status, f.payStatus, nil
}

func (f *fakeOrderStore) SetStatusTx(_ context.Context, _ pgx.Tx, _ int64, status model.OrderStatus) error {
	f.statusSets = append(f.statusSets, status)
	f.status = status
	return nil
}

func (f *fakeOrderStore) SetPaymentStatusTx(_ context.Context, _ pgx.Tx, _ int64, status model.PaymentStatus) error {
	f.paySets = append(f.paySets, status)
	f.payStatus = status
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, _ int64) (*model.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderStore) GetByNumber(_ context.Context, _ string) (*model.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderStore) ListForCustomer(_ context.Context, _ int64) ([]model.Order, error) {
	return nil, nil
}

func (f *fakeOrderStore) List(_ context.Context, _ repository.OrderFilter) ([]model.Order, int, error) {
	return nil, 0, nil
}

// fakePaymentStore records charge bookkeeping per checkout ref.
type fakePaymentStore struct {
	payment *model.Payment

	pendingRefs   []string
	pendingTotals []model.Totals
	paid          []string
	failed        []string
	refunded      []int64
}

func (f *fakePaymentStore) CreatePending(_ context.Context, checkoutRef, _ string, totals model.Totals, _ string, _ []byte) (int64, error) {
	f.pendingRefs = append(f.pendingRefs, checkoutRef)
	f.pendingTotals = append(f.pendingTotals, totals)
	return int64(len(f.pendingRefs)), nil
}

func (f *fakePaymentStore) GetByCheckoutRef(_ context.Context, checkoutRef string) (*model.Payment, error) {
	if f.payment != nil && f.payment.CheckoutRef == checkoutRef {
		return f.payment, nil
	}
	return nil, nil
}

func (f *fakePaymentStore) MarkPaidTx(_ context.Context, _ pgx.Tx, checkoutRef string, _ int64, _ string, _ []byte) error {
	f.paid = append(f.paid, checkoutRef)
	return nil
}

func (f *fakePaymentStore) MarkFailed(_ context.Context, checkoutRef string, _ []byte) error {
	f.failed = append(f.failed, checkoutRef)
	return nil
}

func (f *fakePaymentStore) MarkRefundedTx(_ context.Context, _ pgx.Tx, orderID int64) error {
	f.refunded = append(f.refunded, orderID)
	return nil
}

func TestUpdateStatusAppendsTimelineAndCommits(t *testing.T) {
	orders := newFakeOrderStore()
	orders.status = model.OrderConfirmed
	orders.payStatus = model.PaymentPaid
	payments := &fakePaymentStore{}
	svc := NewOrderService(orders, payments)

	err := svc.UpdateStatus(context.Background(), 1, model.OrderProcessing, nil)
	require.NoError(t, err)

	require.Len(t, orders.statusSets, 1)
	assert.Equal(t, model.OrderProcessing, orders.statusSets[0])
	require.Len(t, orders.events, 1)
	assert.Equal(t, model.OrderProcessing, orders.events[0].Status)
	assert.True(t, orders.tx.committed)
}

func TestUpdateStatusRejectsBackwardTransition(t *testing.T) {
	orders := newFakeOrderStore()
	orders.status = model.OrderDelivered
	orders.payStatus = model.PaymentPaid
	svc := NewOrderService(orders, &fakePaymentStore{})

	err := svc.UpdateStatus(context.Background(), 1, model.OrderProcessing, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// the order and its timeline are untouched
	assert.Empty(t, orders.statusSets)
	assert.Empty(t, orders.events)
	assert.Empty(t, orders.paySets)
	assert.True(t, orders.tx.rolledBack)
	assert.False(t, orders.tx.committed)
}

func TestUpdateStatusUnknownStatusRejectedEarly(t *testing.T) {
	orders := newFakeOrderStore()
	orders.status = model.OrderPending
	svc := NewOrderService(orders, &fakePaymentStore{})

	err := svc.UpdateStatus(context.Background(), 1, model.OrderStatus("teleported"), nil)
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Nil(t, orders.tx, "no transaction opened for a bogus status")
}

func TestUpdateStatusCancelPaidOrderRefunds(t *testing.T) {
	orders := newFakeOrderStore()
	orders.status = model.OrderConfirmed
	orders.payStatus = model.PaymentPaid
	payments := &fakePaymentStore{}
	svc := NewOrderService(orders, payments)

	err := svc.UpdateStatus(context.Background(), 7, model.OrderCancelled, nil)
	require.NoError(t, err)

	require.Len(t, orders.paySets, 1)
	assert.Equal(t, model.PaymentRefunded, orders.paySets[0])
	assert.Equal(t, []int64{7}, payments.refunded)
	assert.True(t, orders.tx.committed)
}

func TestUpdateStatusCancelUnpaidOrderSkipsRefund(t *testing.T) {
	orders := newFakeOrderStore()
	orders.status = model.OrderPending
	orders.payStatus = model.PaymentPending
	payments := &fakePaymentStore{}
	svc := NewOrderService(orders, payments)

	err := svc.UpdateStatus(context.Background(), 7, model.OrderCancelled, nil)
	require.NoError(t, err)

	assert.Empty(t, orders.paySets)
	assert.Empty(t, payments.refunded)
}
