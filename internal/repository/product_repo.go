package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Project2Studios/panickin-skywalker-enhanced-sub003/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

// List returns active, non-deleted products without variants.
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT productid, slug, name, description, category, baseprice, imageurl, active, created_at
		FROM products
		WHERE active = TRUE AND deleted_at IS NULL
		ORDER BY productid
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ProductID, &p.Slug, &p.Name, &p.Description, &p.Category, &p.BasePrice, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetBySlug returns a product with its variants.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `
		SELECT productid, slug, name, description, category, baseprice, imageurl, active, created_at
		FROM products
		WHERE slug=$1 AND deleted_at IS NULL
	`
	var p model.Product
	err := r.DB.QueryRow(ctx, query, slug).Scan(&p.ProductID, &p.Slug, &p.Name, &p.Description, &p.Category, &p.BasePrice, &p.ImageURL, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if p.Variants, err = r.variants(ctx, p.ProductID); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a product with its variants.
func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*model.Product, error) {
	query := `
		SELECT productid, slug, name, description, category, baseprice, imageurl, active, created_at
		FROM products
		WHERE productid=$1 AND deleted_at IS NULL
	`
	var p model.Product
	err := r.DB.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.Slug, &p.Name, &p.Description, &p.Category, &p.BasePrice, &p.ImageURL, &p.Active, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if p.Variants, err = r.variants(ctx, p.ProductID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) variants(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	query := `
		SELECT variantid, productid, name, sku, priceoverride, instock
		FROM productvariants
		WHERE productid=$1
		ORDER BY variantid
	`
	rows, err := r.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ProductVariant
	for rows.Next() {
		var v model.ProductVariant
		if err := rows.Scan(&v.VariantID, &v.ProductID, &v.Name, &v.SKU, &v.PriceOverride, &v.InStock); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a product and returns its id.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	var id int64
	query := `
		INSERT INTO products (slug, name, description, category, baseprice, imageurl, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING productid
	`
	err := r.DB.QueryRow(ctx, query, p.Slug, p.Name, p.Description, p.Category, p.BasePrice, p.ImageURL, p.Active, time.Now()).Scan(&id)
	return id, err
}

// Update rewrites the mutable product fields.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name=$2, description=$3, category=$4, baseprice=$5, imageurl=$6, active=$7
		WHERE productid=$1 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, p.ProductID, p.Name, p.Description, p.Category, p.BasePrice, p.ImageURL, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateVariant inserts a variant for a product.
func (r *ProductRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) (int64, error) {
	var id int64
	query := `
		INSERT INTO productvariants (productid, name, sku, priceoverride, instock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING variantid
	`
	err := r.DB.QueryRow(ctx, query, v.ProductID, v.Name, v.SKU, v.PriceOverride, v.InStock).Scan(&id)
	return id, err
}

// GetVariant returns one variant of a product.
func (r *ProductRepository) GetVariant(ctx context.Context, productID, variantID int64) (*model.ProductVariant, error) {
	query := `
		SELECT variantid, productid, name, sku, priceoverride, instock
		FROM productvariants
		WHERE variantid=$1 AND productid=$2
	`
	var v model.ProductVariant
	err := r.DB.QueryRow(ctx, query, variantID, productID).Scan(&v.VariantID, &v.ProductID, &v.Name, &v.SKU, &v.PriceOverride, &v.InStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &v, nil
}
