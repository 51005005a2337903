package repository

import (
	"context"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
)

// CartRepository persists each session's cart as a single serialized blob.
type CartRepository interface {
	// Get retrieves the cart stored for the given session ID. Returns a
	// not-found error when no cart has been persisted for the session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart for the given session ID, overwriting any
	// previously stored blob.
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error

	// Delete removes the stored cart for the given session ID.
	Delete(ctx context.Context, sessionID string) error
}

// CatalogRepository is the read-only source of product records.
type CatalogRepository interface {
	// List returns every product in the catalog in seed order.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID returns the product with the given ID, or a not-found error.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Categories returns the browsable storefront categories.
	Categories(ctx context.Context) ([]domain.Category, error)
}
