package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Begin opens a transaction on the underlying pool.
func (r *OrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.DB.Begin(ctx)
}

// OrderFilter narrows List results. Zero values mean "no filter".
type OrderFilter struct {
	Status model.OrderStatus
	Search string
	Limit  int
	Offset int
}

const orderColumns = `
	orderid, ordernumber, customerid, email, status, paymentstatus,
	subtotal, shipping, tax, discount, total,
	shippingmethod, shippingaddr, billingaddr, notes, created_at, updated_at
`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.OrderID, &o.OrderNumber, &o.CustomerID, &o.Email, &o.Status, &o.PaymentStatus,
		&o.Totals.Subtotal, &o.Totals.Shipping, &o.Totals.Tax, &o.Totals.Discount, &o.Totals.Total,
		&o.ShippingMethod, &o.ShippingAddr, &o.BillingAddr, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// CreateTx inserts the order row and returns its id.
func (r *OrderRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *model.Order) (int64, error) {
	var id int64
	query := `
		INSERT INTO orders
			(ordernumber, customerid, email, status, paymentstatus,
			 subtotal, shipping, tax, discount, total,
			 shippingmethod, shippingaddr, billingaddr, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		RETURNING orderid
	`
	err := tx.QueryRow(ctx, query,
		o.OrderNumber, o.CustomerID, o.Email, o.Status, o.PaymentStatus,
		o.Totals.Subtotal, o.Totals.Shipping, o.Totals.Tax, o.Totals.Discount, o.Totals.Total,
		o.ShippingMethod, o.ShippingAddr, o.BillingAddr, time.Now(),
	).Scan(&id)
	return id, err
}

// InsertItemsTx writes the immutable line-item snapshot.
func (r *OrderRepository) InsertItemsTx(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderItem) error {
	query := `
		INSERT INTO orderitems (orderid, productid, variantid, name, variantname, unitprice, quantity, linetotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, it := range items {
		if _, err := tx.Exec(ctx, query, orderID, it.ProductID, it.VariantID, it.Name, it.VariantName, it.UnitPrice, it.Quantity, it.LineTotal); err != nil {
			return err
		}
	}
	return nil
}

// AppendEventTx appends one entry to the order timeline. The timeline is
// append-only; there is no update or delete path for orderevents.
func (r *OrderRepository) AppendEventTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus, note *string) error {
	query := `INSERT INTO orderevents (orderid, status, note, created_at) VALUES ($1, $2, $3, $4)`
	_, err := tx.Exec(ctx, query, orderID, status, note, time.Now())
	return err
}

// GetStatusForUpdateTx locks the order row and returns its current status.
// Concurrent transitions on the same order serialize on this lock.
func (r *OrderRepository) GetStatusForUpdateTx(ctx context.Context, tx pgx.Tx, orderID int64) (model.OrderStatus, model.PaymentStatus, error) {
	var status model.OrderStatus
	var payment model.PaymentStatus
	query := `SELECT status, paymentstatus FROM orders WHERE orderid=$1 FOR UPDATE`
	if err := tx.QueryRow(ctx, query, orderID).Scan(&status, &payment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrOrderNotFound
		}
		return "", "", err
	}
	return status, payment, nil
}

// SetStatusTx updates the order status inside the transaction.
func (r *OrderRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.OrderStatus) error {
	query := `UPDATE orders SET status=$2, updated_at=$3 WHERE orderid=$1`
	_, err := tx.Exec(ctx, query, orderID, status, time.Now())
	return err
}

// SetPaymentStatusTx updates the payment status inside the transaction.
func (r *OrderRepository) SetPaymentStatusTx(ctx context.Context, tx pgx.Tx, orderID int64, status model.PaymentStatus) error {
	query := `UPDATE orders SET paymentstatus=$2, updated_at=$3 WHERE orderid=$1`
	_, err := tx.Exec(ctx, query, orderID, status, time.Now())
	return err
}

// GetByID returns the order with items and timeline.
func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE orderid=$1`, orderID))
	if err != nil {
		return nil, err
	}
	return r.attach(ctx, o)
}

// GetByNumber returns the order with items and timeline, for customer tracking.
func (r *OrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE ordernumber=$1`, orderNumber))
	if err != nil {
		return nil, err
	}
	return r.attach(ctx, o)
}

func (r *OrderRepository) attach(ctx context.Context, o *model.Order) (*model.Order, error) {
	items, err := r.items(ctx, o.OrderID)
	if err != nil {
		return nil, err
	}
	events, err := r.Timeline(ctx, o.OrderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.Timeline = events
	return o, nil
}

func (r *OrderRepository) items(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT orderitemid, orderid, productid, variantid, name, variantname, unitprice, quantity, linetotal
		FROM orderitems
		WHERE orderid=$1
		ORDER BY orderitemid
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.ProductID, &it.VariantID, &it.Name, &it.VariantName, &it.UnitPrice, &it.Quantity, &it.LineTotal); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Timeline returns the append-only status history, oldest first.
func (r *OrderRepository) Timeline(ctx context.Context, orderID int64) ([]model.OrderEvent, error) {
	query := `SELECT eventid, orderid, status, note, created_at FROM orderevents WHERE orderid=$1 ORDER BY eventid`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderEvent
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.EventID, &e.OrderID, &e.Status, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListForCustomer returns a customer's orders, newest first, without items.
func (r *OrderRepository) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customerid=$1 ORDER BY orderid DESC`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// List returns orders for the admin console with optional status filter and
// free-text search over order number and email.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]model.Order, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status=$%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(ordernumber ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit)
	limitArg := len(args)
	args = append(args, f.Offset)
	offsetArg := len(args)

	query := fmt.Sprintf(
		`SELECT %s FROM orders WHERE %s ORDER BY orderid DESC LIMIT $%d OFFSET $%d`,
		orderColumns, cond, limitArg, offsetArg,
	)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	return out, total, rows.Err()
}
