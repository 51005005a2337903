package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	"github.com/ariyanssg/rizz-pharmacy/internal/repository/memory"
	"github.com/ariyanssg/rizz-pharmacy/internal/service"
	"github.com/ariyanssg/rizz-pharmacy/pkg/httputil"
)

// setupCatalogRouter builds the catalog routes against the real embedded
// seed catalog. The catalog is read-only so sharing it across tests is safe.
func setupCatalogRouter(t *testing.T) *chi.Mux {
	t.Helper()
	repo, err := memory.NewCatalogRepository()
	require.NoError(t, err)
	handler := NewCatalogHandler(service.NewCatalogService(repo, testLogger()), testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/{id}", handler.GetProduct)
		r.Get("/categories", handler.ListCategories)
	})
	return r
}

func decodeProducts(t *testing.T, resp httputil.Response) []domain.Product {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	return products
}

func getJSON(t *testing.T, router *chi.Mux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// GET /api/v1/products
// ============================================================================

func TestListProducts_ReturnsFullCatalog(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	products := decodeProducts(t, resp)
	assert.Len(t, products, 8)
}

func TestListProducts_FiltersByCategory(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?category=beauty-hair")

	assert.Equal(t, http.StatusOK, rec.Code)
	products := decodeProducts(t, decodeResponse(t, rec))
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "beauty-hair", p.Category)
	}
}

func TestListProducts_SearchAndSort(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?search=peptide&sort_by=price_desc")

	assert.Equal(t, http.StatusOK, rec.Code)
	products := decodeProducts(t, decodeResponse(t, rec))
	require.NotEmpty(t, products)
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i-1].Price, products[i].Price)
	}
}

func TestListProducts_PriceRangeAndFeatured(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?min_price=100&featured=true")

	assert.Equal(t, http.StatusOK, rec.Code)
	products := decodeProducts(t, decodeResponse(t, rec))
	require.Len(t, products, 1)
	assert.Equal(t, "ph-8", products[0].ID)
}

func TestListProducts_InvalidMinPrice_Returns400(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?min_price=cheap")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestListProducts_InvalidFeaturedFlag_Returns400(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?featured=maybe")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

func TestListProducts_InvalidSortOrder_Returns400(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products?sort_by=cheapest")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

// ============================================================================
// GET /api/v1/products/{id}
// ============================================================================

func TestGetProduct_Success(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products/ph-3")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var product domain.Product
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.Equal(t, "Compounded Sermorelin 15mg", product.Title)
	assert.InDelta(t, 179, product.Price, 0.0001)
}

func TestGetProduct_NotFound_Returns404(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/products/ph-999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// ============================================================================
// GET /api/v1/categories
// ============================================================================

func TestListCategories_Success(t *testing.T) {
	router := setupCatalogRouter(t)

	rec := getJSON(t, router, "/api/v1/categories")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var categories []domain.Category
	require.NoError(t, json.Unmarshal(raw, &categories))
	assert.Len(t, categories, 6)
}
