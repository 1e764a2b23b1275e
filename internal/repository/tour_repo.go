package repository

import (
	"context"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TourRepository struct {
	DB *pgxpool.Pool
}

func NewTourRepository(db *pgxpool.Pool) *TourRepository {
	return &TourRepository{DB: db}
}

// ListUpcoming returns shows from today onward, soonest first.
func (r *TourRepository) ListUpcoming(ctx context.Context) ([]model.TourDate, error) {
	query := `
		SELECT tourid, venue, city, country, showdate, ticketurl, soldout, created_at
		FROM tourdates
		WHERE showdate >= NOW()
		ORDER BY showdate
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TourDate
	for rows.Next() {
		var t model.TourDate
		if err := rows.Scan(&t.TourID, &t.Venue, &t.City, &t.Country, &t.ShowDate, &t.TicketURL, &t.SoldOut, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a show announcement.
func (r *TourRepository) Create(ctx context.Context, t *model.TourDate) (int64, error) {
	var id int64
	query := `
		INSERT INTO tourdates (venue, city, country, showdate, ticketurl, soldout, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING tourid
	`
	err := r.DB.QueryRow(ctx, query, t.Venue, t.City, t.Country, t.ShowDate, t.TicketURL, t.SoldOut, time.Now()).Scan(&id)
	return id, err
}

// SetSoldOut flips the sold-out flag on a show.
func (r *TourRepository) SetSoldOut(ctx context.Context, tourID int64, soldOut bool) error {
	_, err := r.DB.Exec(ctx, `UPDATE tourdates SET soldout=$2 WHERE tourid=$1`, tourID, soldOut)
	return err
}
