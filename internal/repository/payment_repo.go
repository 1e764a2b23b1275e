package repository

import (
	"context"
	"errors"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// CreatePending records a charge attempt before the shopper is sent to the
// gateway. The checkout ref is what the gateway echoes back in its webhook,
// and the totals snapshot is what the order is later built from.
func (r *PaymentRepository) CreatePending(
	ctx context.Context,
	checkoutRef string,
	sessionID string,
	totals model.Totals,
	provider string,
	payload []byte,
) (int64, error) {

	var paymentID int64
	q := `
		INSERT INTO payments
			(checkoutref, sessionid, amount, totals, paymentstatus, paymentprovider, providerpayload, createdat)
		VALUES
			($1, $2, $3, $4, 'pending', $5, $6, NOW())
		RETURNING paymentid
	`
	err := r.DB.QueryRow(ctx, q, checkoutRef, sessionID, totals.Total, totals, provider, payload).Scan(&paymentID)
	return paymentID, err
}

// GetByCheckoutRef returns the payment for a checkout ref, or nil.
func (r *PaymentRepository) GetByCheckoutRef(ctx context.Context, checkoutRef string) (*model.Payment, error) {
	var p model.Payment
	q := `
		SELECT paymentid, checkoutref, sessionid, orderid, amount, totals, paymentstatus,
		       paymentprovider, providerref, providerpayload, createdat, paidat
		FROM payments
		WHERE checkoutref=$1
	`
	err := r.DB.QueryRow(ctx, q, checkoutRef).Scan(
		&p.PaymentID,
		&p.CheckoutRef,
		&p.SessionID,
		&p.OrderID,
		&p.Amount,
		&p.Totals,
		&p.Status,
		&p.Provider,
		&p.ProviderRef,
		&p.ProviderPayload,
		&p.CreatedAt,
		&p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// MarkPaidTx flips a pending payment to paid and links it to the created
// order, inside the order-creation transaction.
func (r *PaymentRepository) MarkPaidTx(
	ctx context.Context,
	tx pgx.Tx,
	checkoutRef string,
	orderID int64,
	providerRef string,
	payload []byte,
) error {

	_, err := tx.Exec(ctx, `
		UPDATE payments
		SET paymentstatus='paid',
		    orderid=$2,
		    providerref=$3,
		    providerpayload=$4,
		    paidat=NOW()
		WHERE checkoutref=$1 AND paymentstatus='pending'
	`, checkoutRef, orderID, providerRef, payload)

	return err
}

// MarkFailed records a gateway failure. No order is ever created for a
// failed payment, so this only touches the payments row.
func (r *PaymentRepository) MarkFailed(ctx context.Context, checkoutRef string, payload []byte) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE payments
		SET paymentstatus='failed',
		    providerpayload=$2
		WHERE checkoutref=$1
		  AND paymentstatus='pending'
	`, checkoutRef, payload)
	return err
}

// MarkRefundedTx marks a paid payment refunded (used when a paid order is
// cancelled by an admin).
func (r *PaymentRepository) MarkRefundedTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE payments
		SET paymentstatus='refunded'
		WHERE orderid=$1 AND paymentstatus='paid'
	`, orderID)
	return err
}
