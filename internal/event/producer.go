package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ariyanssg/rizz-pharmacy/internal/domain"
	pkgkafka "github.com/ariyanssg/rizz-pharmacy/pkg/kafka"
)

// Kafka topic constants for cart domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event. It carries the
// full item list plus the derived summary so consumers never recompute
// pricing themselves.
type CartUpdatedData struct {
	SessionID string          `json:"session_id"`
	Items     []CartItemData  `json:"items"`
	Summary   CartSummaryData `json:"summary"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartSummaryData is the derived pricing payload within cart events.
type CartSummaryData struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// Producer publishes cart domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, cart domain.Cart, summary domain.Summary) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		SessionID: sessionID,
		Items:     items,
		Summary: CartSummaryData{
			ItemCount: summary.ItemCount,
			Subtotal:  summary.Subtotal,
			Tax:       summary.Tax,
			Shipping:  summary.Shipping,
			Total:     summary.Total,
		},
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", sessionID),
		slog.Int("item_count", summary.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}
