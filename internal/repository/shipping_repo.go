package repository

import (
	"context"
	"errors"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrShippingMethodNotFound = errors.New("shipping method not found")

type ShippingRepository struct {
	DB *pgxpool.Pool
}

func NewShippingRepository(db *pgxpool.Pool) *ShippingRepository {
	return &ShippingRepository{DB: db}
}

// ListActive returns selectable shipping methods.
func (r *ShippingRepository) ListActive(ctx context.Context) ([]model.ShippingMethod, error) {
	query := `SELECT methodid, code, name, cost, estimate, active FROM shippingmethods WHERE active=TRUE ORDER BY cost`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShippingMethod
	for rows.Next() {
		var m model.ShippingMethod
		if err := rows.Scan(&m.MethodID, &m.Code, &m.Name, &m.Cost, &m.Estimate, &m.Active); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByCode returns one active method by its code ("standard", "express").
func (r *ShippingRepository) GetByCode(ctx context.Context, code string) (*model.ShippingMethod, error) {
	query := `SELECT methodid, code, name, cost, estimate, active FROM shippingmethods WHERE code=$1 AND active=TRUE`
	var m model.ShippingMethod
	err := r.DB.QueryRow(ctx, query, code).Scan(&m.MethodID, &m.Code, &m.Name, &m.Cost, &m.Estimate, &m.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShippingMethodNotFound
		}
		return nil, err
	}
	return &m, nil
}
