package repository

import (
	"context"
	"errors"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewsletterRepository struct {
	DB *pgxpool.Pool
}

func NewNewsletterRepository(db *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{DB: db}
}

// Subscribe inserts a subscriber, or returns the existing row for duplicate
// signups so the endpoint stays idempotent.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email, confirmToken string) (*model.Subscriber, bool, error) {
	var s model.Subscriber
	insert := `
		INSERT INTO subscribers (email, confirmtoken, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING subscriberid, email, confirmtoken, confirmed, created_at
	`
	err := r.DB.QueryRow(ctx, insert, email, confirmToken).Scan(&s.SubscriberID, &s.Email, &s.ConfirmToken, &s.Confirmed, &s.CreatedAt)
	if err == nil {
		return &s, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// already subscribed
	query := `SELECT subscriberid, email, confirmtoken, confirmed, created_at FROM subscribers WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&s.SubscriberID, &s.Email, &s.ConfirmToken, &s.Confirmed, &s.CreatedAt); err != nil {
		return nil, false, err
	}
	return &s, false, nil
}

// Confirm marks a subscriber confirmed by their token.
func (r *NewsletterRepository) Confirm(ctx context.Context, token string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE subscribers SET confirmed=TRUE WHERE confirmtoken=$1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("unknown confirmation token")
	}
	return nil
}
