package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// Create creates a customer row (used only during public registration)
func (r *CustomerRepository) Create(ctx context.Context, authID int64, email string) (int64, error) {
	var id int64
	query := `
		INSERT INTO customers (authid, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING customerid
	`
	if err := r.DB.QueryRow(ctx, query, authID, email, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByAuthID returns a customer by authid
func (r *CustomerRepository) GetByAuthID(ctx context.Context, authID int64) (*model.Customer, error) {
	var c model.Customer
	query := `SELECT customerid, authid, fullname, email, created_at, deleted_at FROM customers WHERE authid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, authID).Scan(&c.CustomerID, &c.AuthID, &c.Fullname, &c.Email, &c.CreatedAt, &c.DeletedAt); err != nil {
		return nil, errors.New("customer not found")
	}
	return &c, nil
}

// GetByID returns a customer by customerid (internal use)
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	query := `SELECT customerid, authid, fullname, email, created_at, deleted_at FROM customers WHERE customerid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&c.CustomerID, &c.AuthID, &c.Fullname, &c.Email, &c.CreatedAt, &c.DeletedAt); err != nil {
		return nil, errors.New("customer not found")
	}
	return &c, nil
}
