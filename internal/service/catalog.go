package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	"github.com/ariyanssg/rizz-pharmacy/internal/repository"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

// CatalogFilter narrows and orders a product listing. Zero values mean
// "no constraint".
type CatalogFilter struct {
	Category     string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       string
	FeaturedOnly bool
}

// CatalogService serves read-only product listings with predicate filtering
// over the in-memory catalog.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns the catalog filtered and sorted per the given filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter CatalogFilter) ([]domain.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, apperrors.InvalidInput("min price must not exceed max price")
	}
	if filter.SortBy != "" && !domain.IsValidSortOrder(filter.SortBy) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("sort order must be one of: %s", strings.Join(domain.ValidSortOrders(), ", ")))
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	filtered := products[:0]
	for _, p := range products {
		if matches(p, filter) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, filter.SortBy)
	return filtered, nil
}

// GetProduct returns a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// SearchProducts returns products whose title, description, or category
// contains the query, case-insensitively.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	return s.ListProducts(ctx, CatalogFilter{Search: query})
}

// FeaturedProducts returns the products flagged for the storefront's
// featured sections.
func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return s.ListProducts(ctx, CatalogFilter{FeaturedOnly: true})
}

// Categories returns the browsable storefront categories.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// matches applies every constraint in the filter to a single product.
func matches(p domain.Product, f CatalogFilter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	return true
}

// sortProducts orders the slice in place. An empty sort order preserves
// seed order. All sorts are stable so equal products keep their relative
// catalog position.
func sortProducts(products []domain.Product, sortBy string) {
	switch sortBy {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating.Rate > products[j].Rating.Rate })
	case domain.SortName:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Title < products[j].Title })
	case domain.SortFeatured:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Featured && !products[j].Featured })
	}
}
