package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

func setupTestRedis(t *testing.T) (*CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewCartRepository(client, 24*time.Hour)
	return repo, mr
}

func sampleCart() *domain.Cart {
	return &domain.Cart{
		Items: []domain.LineItem{
			{
				ID:       "ph-1",
				Title:    "Retarutide",
				Image:    "/images/retarutide.png",
				Price:    39.99,
				Period:   "/per month",
				Quantity: 2,
			},
			{
				ID:       "ph-3",
				Title:    "Compounded Sermorelin 15mg",
				Price:    179,
				Quantity: 1,
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestCartRepository_Get_Success(t *testing.T) {
	repo, mr := setupTestRedis(t)

	cart := sampleCart()
	data, err := json.Marshal(cart)
	require.NoError(t, err)

	// Set data directly in miniredis.
	require.NoError(t, mr.Set("rizz_pharmacy_cart:sess-1", string(data)))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "ph-1", got.Items[0].ID)
	assert.Equal(t, "Retarutide", got.Items[0].Title)
	assert.Equal(t, 39.99, got.Items[0].Price)
	assert.Equal(t, "/per month", got.Items[0].Period)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "ph-3", got.Items[1].ID)
}

func TestCartRepository_Get_NotFound(t *testing.T) {
	repo, _ := setupTestRedis(t)

	_, err := repo.Get(context.Background(), "missing-session")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_Get_CorruptData(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("rizz_pharmacy_cart:sess-1", "{not valid json"))

	_, err := repo.Get(context.Background(), "sess-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "unmarshal cart")
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestCartRepository_Save_RoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t)

	cart := sampleCart()
	require.NoError(t, repo.Save(context.Background(), "sess-1", cart))

	got, err := repo.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)
}

func TestCartRepository_Save_SetsTTL(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, repo.Save(context.Background(), "sess-1", sampleCart()))

	ttl := mr.TTL("rizz_pharmacy_cart:sess-1")
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestCartRepository_Save_Overwrites(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleCart()))
	require.NoError(t, repo.Save(ctx, "sess-1", &domain.Cart{Items: []domain.LineItem{}}))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartRepository_Save_IsolatedPerSession(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleCart()))

	_, err := repo.Get(ctx, "sess-2")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestCartRepository_Delete(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleCart()))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCartRepository_Delete_MissingKeyIsNoop(t *testing.T) {
	repo, _ := setupTestRedis(t)

	assert.NoError(t, repo.Delete(context.Background(), "never-saved"))
}
