package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	"github.com/ariyanssg/rizz-pharmacy/internal/event"
	"github.com/ariyanssg/rizz-pharmacy/internal/repository"
	apperrors "github.com/ariyanssg/rizz-pharmacy/pkg/errors"
)

// AddItemInput holds the product fields copied into the cart when an item is
// added. Quantity defaults to 1 when zero.
type AddItemInput struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Period   string  `json:"period"`
	Quantity int     `json:"quantity"`
}

// CartService owns the in-memory cart state for every active session and is
// the only legal mutation surface. Each session's cart is hydrated from the
// repository on first access and is authoritative for the rest of the
// session: every mutation is applied in memory first, then written through
// to the repository best-effort. A failed write is logged and swallowed —
// the mutation still holds for the remainder of the session.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
	pricing  domain.PricingConfig

	mu       sync.Mutex
	sessions map[string]domain.Cart
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger, pricing domain.PricingConfig) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		pricing:  pricing,
		sessions: make(map[string]domain.Cart),
	}
}

// Pricing returns the pricing policy the service computes summaries with.
func (s *CartService) Pricing() domain.PricingConfig {
	return s.pricing
}

// Cart returns the current cart for a session, hydrating it from the
// repository on first access. A session with nothing persisted gets an
// empty cart.
func (s *CartService) Cart(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(ctx, sessionID), nil
}

// Summary computes the monetary summary for a session's current cart. It is
// derived fresh on every call, never cached.
func (s *CartService) Summary(ctx context.Context, sessionID string) (domain.Summary, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return cart.Summarize(s.pricing), nil
}

// ItemCount returns the sum of all quantities in the session's cart.
func (s *CartService) ItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

// IsInCart reports whether the given product is in the session's cart.
func (s *CartService) IsInCart(ctx context.Context, sessionID, productID string) (bool, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return cart.Contains(productID), nil
}

// ItemQuantity returns the stored quantity for a product, or 0 if absent.
func (s *CartService) ItemQuantity(ctx context.Context, sessionID, productID string) (int, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.ItemQuantity(productID), nil
}

// GetItem returns the line item for a product if present.
func (s *CartService) GetItem(ctx context.Context, sessionID, productID string) (domain.LineItem, bool, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return domain.LineItem{}, false, err
	}
	item, ok := cart.Item(productID)
	return item, ok, nil
}

// AddItem adds a product to the session's cart. Adding a product already in
// the cart increments its quantity — the merge path, not an error. A zero
// quantity defaults to 1; a negative quantity is rejected.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}
	if input.ID == "" {
		return domain.Cart{}, apperrors.InvalidInput("product id is required")
	}
	if input.Price < 0 {
		return domain.Cart{}, apperrors.InvalidInput("price must not be negative")
	}
	if input.Quantity < 0 {
		return domain.Cart{}, apperrors.InvalidInput("quantity must not be negative")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cart := s.apply(ctx, sessionID, domain.AddItem{Item: domain.LineItem{
		ID:       input.ID,
		Title:    input.Title,
		Image:    input.Image,
		Price:    input.Price,
		Period:   input.Period,
		Quantity: quantity,
	}})

	s.persist(ctx, sessionID, cart)
	s.publishUpdated(ctx, sessionID, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", input.ID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes the line item with the given product ID. Removing an
// absent product is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return domain.Cart{}, apperrors.InvalidInput("product id is required")
	}

	cart := s.apply(ctx, sessionID, domain.RemoveItem{ID: productID})

	s.persist(ctx, sessionID, cart)
	s.publishUpdated(ctx, sessionID, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// SetQuantity replaces the stored quantity for a product. A quantity of zero
// or less removes the item; an unknown product ID is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return domain.Cart{}, apperrors.InvalidInput("product id is required")
	}

	cart := s.apply(ctx, sessionID, domain.SetQuantity{ID: productID, Quantity: quantity})

	s.persist(ctx, sessionID, cart)
	s.publishUpdated(ctx, sessionID, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Clear empties the session's cart unconditionally. The empty cart is
// written through so a reload after clearing yields an empty cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, apperrors.InvalidInput("session id is required")
	}

	cart := s.apply(ctx, sessionID, domain.Clear{})

	s.persist(ctx, sessionID, cart)

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return cart, nil
}

// apply hydrates the session if needed, runs the reducer, and stores the new
// state. The lock is held only for the in-memory transition; persistence
// happens afterwards on the returned snapshot.
func (s *CartService) apply(ctx context.Context, sessionID string, action domain.Action) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := domain.Reduce(s.session(ctx, sessionID), action)
	s.sessions[sessionID] = cart
	return cart
}

// session returns the in-memory cart for a session, loading it from the
// repository on first access. Missing or unreadable persisted state yields
// an empty cart rather than an error. Callers must hold s.mu.
func (s *CartService) session(ctx context.Context, sessionID string) domain.Cart {
	if cart, ok := s.sessions[sessionID]; ok {
		return cart
	}

	cart := domain.Cart{Items: []domain.LineItem{}}
	stored, err := s.repo.Get(ctx, sessionID)
	switch {
	case err == nil:
		cart = domain.Reduce(cart, domain.Load{Items: stored.Items})
	case errors.Is(err, apperrors.ErrNotFound):
		// First visit for this session.
	default:
		// Corrupt blob or storage failure: start empty, keep serving.
		s.logger.WarnContext(ctx, "failed to load persisted cart, starting empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.sessions[sessionID] = cart
	return cart
}

// persist writes the cart through to the repository. Failures are logged and
// swallowed: the in-memory state stays authoritative and the mutation that
// triggered the write has already taken effect.
func (s *CartService) persist(ctx context.Context, sessionID string, cart domain.Cart) {
	if err := s.repo.Save(ctx, sessionID, &cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

// publishUpdated emits a cart.updated event fire-and-forget.
func (s *CartService) publishUpdated(ctx context.Context, sessionID string, cart domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, sessionID, cart, cart.Summarize(s.pricing)); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}
