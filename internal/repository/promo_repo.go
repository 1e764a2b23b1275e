package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPromoNotFound = errors.New("promo code not found")

type PromoRepository struct {
	DB *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{DB: db}
}

// GetByCode looks up a promo rule, case-insensitively. The rule is validated
// before it is returned so a malformed row never reaches the calculator.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT promoid, code, kind, value, minsubtotal, expires_at, active
		FROM promocodes
		WHERE UPPER(code)=$1
	`
	var p model.PromoCode
	err := r.DB.QueryRow(ctx, query, strings.ToUpper(code)).Scan(&p.PromoID, &p.Code, &p.Kind, &p.Value, &p.MinSubtotal, &p.ExpiresAt, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
