package services

import (
	"context"
	"errors"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"
	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/repository"
)

// ProductService exposes the merch catalog: public browsing plus the admin
// create/update surface.
type ProductService struct {
	Repo *repository.ProductRepository
}

func NewProductService(r *repository.ProductRepository) *ProductService {
	return &ProductService{Repo: r}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.Repo.GetBySlug(ctx, slug)
}

func (s *ProductService) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, productID)
}

func (s *ProductService) GetVariant(ctx context.Context, productID, variantID int64) (*model.ProductVariant, error) {
	return s.Repo.GetVariant(ctx, productID, variantID)
}

func (s *ProductService) validate(p *model.Product) error {
	if p.Slug == "" {
		return errors.New("slug is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.BasePrice.IsNegative() || p.BasePrice.IsZero() {
		return errors.New("base price must be positive")
	}
	return nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, p *model.Product) (int64, error) {
	if err := s.validate(p); err != nil {
		return 0, err
	}
	return s.Repo.Create(ctx, p)
}

// Update rewrites the mutable fields of an existing product.
func (s *ProductService) Update(ctx context.Context, p *model.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, p)
}

// CreateVariant adds a size/color variant to a product.
func (s *ProductService) CreateVariant(ctx context.Context, v *model.ProductVariant) (int64, error) {
	if v.Name == "" || v.SKU == "" {
		return 0, errors.New("variant name and sku are required")
	}
	if _, err := s.Repo.GetByID(ctx, v.ProductID); err != nil {
		return 0, err
	}
	return s.Repo.CreateVariant(ctx, v)
}
