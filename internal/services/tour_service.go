package services

import (
	"context"
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
)

// TourService backs the tour dates page and its admin surface.
type TourService struct {
	Repo *repository.TourRepository
}

func NewTourService(r *repository.TourRepository) *TourService {
	return &TourService{Repo: r}
}

func (s *TourService) ListUpcoming(ctx context.Context) ([]model.TourDate, error) {
	return s.Repo.ListUpcoming(ctx)
}

// Announce publishes a new show.
func (s *TourService) Announce(ctx context.Context, t *model.TourDate) (int64, error) {
	if t.Venue == "" || t.City == "" || t.Country == "" {
		return 0, errors.New("venue, city and country are required")
	}
	if t.ShowDate.Before(time.Now()) {
		return 0, errors.New("show date is in the past")
	}
	return s.Repo.Create(ctx, t)
}

func (s *TourService) SetSoldOut(ctx context.Context, tourID int64, soldOut bool) error {
	return s.Repo.SetSoldOut(ctx, tourID, soldOut)
}
