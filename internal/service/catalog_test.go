package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	"github.com/ariyanssg/rizz-pharmacy/internal/repository/memory"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	repo, err := memory.NewCatalogRepository()
	require.NoError(t, err)
	return NewCatalogService(repo, newTestLogger())
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func floatPtr(v float64) *float64 { return &v }

// --- ListProducts ---

func TestListProducts_All(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 8)
	// Seed order is preserved when no sort is requested.
	assert.Equal(t, "ph-1", products[0].ID)
}

func TestListProducts_ByCategory(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{Category: "athletic-performance"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ph-3", "ph-4"}, productIDs(products))
}

func TestListProducts_UnknownCategoryIsEmpty(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{Category: "no-such-category"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProducts_PriceRange(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{
		MinPrice: floatPtr(100),
		MaxPrice: floatPtr(150),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ph-4", "ph-8"}, productIDs(products))
}

func TestListProducts_MinPriceAboveMaxPrice(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.ListProducts(context.Background(), CatalogFilter{
		MinPrice: floatPtr(100),
		MaxPrice: floatPtr(50),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestListProducts_InvalidSortOrder(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: "cheapest"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestListProducts_SortPriceAsc(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: domain.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.True(t, sort.SliceIsSorted(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	}))
	// Stable: equal prices keep seed order.
	assert.Equal(t, "ph-1", products[0].ID)
	assert.Equal(t, "ph-2", products[1].ID)
}

func TestListProducts_SortPriceDesc(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: domain.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.InDelta(t, 179, products[0].Price, 0.0001)
	assert.InDelta(t, 39.99, products[7].Price, 0.0001)
}

func TestListProducts_SortRating(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: domain.SortRating})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "ph-3", products[0].ID)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Rating.Rate, products[i].Rating.Rate)
	}
}

func TestListProducts_SortName(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: domain.SortName})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.True(t, sort.SliceIsSorted(products, func(i, j int) bool {
		return products[i].Title < products[j].Title
	}))
}

func TestListProducts_SortFeatured(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.ListProducts(context.Background(), CatalogFilter{SortBy: domain.SortFeatured})
	require.NoError(t, err)
	require.Len(t, products, 8)
	for i, p := range products[:4] {
		assert.True(t, p.Featured, "product %d (%s) should be featured", i, p.ID)
	}
	for i, p := range products[4:] {
		assert.False(t, p.Featured, "product %d (%s) should not be featured", i+4, p.ID)
	}
}

// --- Search ---

func TestSearchProducts_ByTitle(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.SearchProducts(context.Background(), "sermorelin")
	require.NoError(t, err)
	assert.Equal(t, []string{"ph-3"}, productIDs(products))
}

func TestSearchProducts_ByDescription(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.SearchProducts(context.Background(), "hair loss")
	require.NoError(t, err)
	assert.Equal(t, []string{"ph-6"}, productIDs(products))
}

func TestSearchProducts_ByCategory(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.SearchProducts(context.Background(), "weight-loss")
	require.NoError(t, err)
	assert.Equal(t, []string{"ph-1"}, productIDs(products))
}

func TestSearchProducts_CaseInsensitive(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.SearchProducts(context.Background(), "RETARUTIDE")
	require.NoError(t, err)
	assert.Equal(t, []string{"ph-1"}, productIDs(products))
}

func TestSearchProducts_NoMatches(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.SearchProducts(context.Background(), "aspirin")
	require.NoError(t, err)
	assert.Empty(t, products)
}

// --- Featured / GetProduct / Categories ---

func TestFeaturedProducts(t *testing.T) {
	svc := newTestCatalog(t)

	products, err := svc.FeaturedProducts(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ph-1", "ph-2", "ph-6", "ph-8"}, productIDs(products))
}

func TestGetProduct(t *testing.T) {
	svc := newTestCatalog(t)

	product, err := svc.GetProduct(context.Background(), "ph-7")
	require.NoError(t, err)
	assert.Equal(t, "Compounded NAD+ 1000 mg", product.Title)
	assert.Equal(t, "brain-health", product.Category)
	assert.InDelta(t, 179, product.Price, 0.0001)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.GetProduct(context.Background(), "ph-999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetProduct_MissingID(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.GetProduct(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCategories(t *testing.T) {
	svc := newTestCatalog(t)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 6)

	slugs := make([]string, len(categories))
	for i, c := range categories {
		slugs[i] = c.Slug
	}
	assert.Equal(t, []string{
		"weight-loss", "sexual-health", "brain-health",
		"testosterone-hrt", "athletic-performance", "beauty-hair",
	}, slugs)
}
