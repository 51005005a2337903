package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

//go:embed seed/products.json
var productSeed []byte

//go:embed seed/categories.json
var categorySeed []byte

// CatalogRepository implements repository.CatalogRepository over the
// storefront's static product list, compiled into the binary. The catalog is
// read-only; List and GetByID hand out copies so callers can never mutate
// the seed data.
type CatalogRepository struct {
	products   []domain.Product
	byID       map[string]int
	categories []domain.Category
}

// NewCatalogRepository loads the embedded seed data.
func NewCatalogRepository() (*CatalogRepository, error) {
	var products []domain.Product
	if err := json.Unmarshal(productSeed, &products); err != nil {
		return nil, fmt.Errorf("unmarshal product seed: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(categorySeed, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal category seed: %w", err)
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product seed entry %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q in seed", p.ID)
		}
		byID[p.ID] = i
	}

	return &CatalogRepository{
		products:   products,
		byID:       byID,
		categories: categories,
	}, nil
}

// List returns every product in seed order.
func (r *CatalogRepository) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns the product with the given ID.
func (r *CatalogRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p := r.products[i]
	return &p, nil
}

// Categories returns the browsable storefront categories.
func (r *CatalogRepository) Categories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
