package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstocknook/storefront/internal/domain"
	pkgkafka "github.com/bookstocknook/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated       = "bookstock.cart.updated"
	TopicCartCleared       = "bookstock.cart.cleared"
	TopicCheckoutCompleted = "bookstock.checkout.completed"
	TopicContactMessage    = "bookstock.contact.message"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeOrder   = "order"
	AggregateTypeContact = "contact"
)

// The storefront runs a single shared cart, so all cart events carry the
// same aggregate ID.
const CartAggregateID = "storefront-cart"

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartLineData is the line payload within cart and checkout events.
type CartLineData struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	Lines       []CartLineData `json:"lines"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	Reason string `json:"reason"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	OrderID     string         `json:"order_id"`
	Lines       []CartLineData `json:"lines"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
}

// ContactMessageData is the payload for a contact.message event.
type ContactMessageData struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// Producer publishes storefront domain events to Kafka.
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

func cartLines(cart *domain.Cart) []CartLineData {
	lines := make([]CartLineData, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = CartLineData{
			BookID:   l.ID,
			Title:    l.Title,
			Author:   l.Author,
			Price:    l.Price,
			Quantity: l.Quantity,
		}
	}
	return lines
}

// PublishCartUpdated publishes a cart.updated event with the full cart snapshot.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		Lines:       cartLines(cart),
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, CartAggregateID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, reason string) error {
	data := CartClearedData{Reason: reason}

	event, err := pkgkafka.NewEvent(TopicCartCleared, CartAggregateID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("reason", reason),
	)

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, orderID string, cart *domain.Cart) error {
	data := CheckoutCompletedData{
		OrderID:     orderID,
		Lines:       cartLines(cart),
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.TotalAmount(),
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, orderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("order_id", orderID),
		slog.Int64("total_amount", cart.TotalAmount()),
	)

	return nil
}

// PublishContactMessage publishes a contact.message event.
func (p *Producer) PublishContactMessage(ctx context.Context, data ContactMessageData) error {
	event, err := pkgkafka.NewEvent(TopicContactMessage, data.MessageID, AggregateTypeContact, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create contact.message event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicContactMessage, event); err != nil {
		return fmt.Errorf("publish contact.message event: %w", err)
	}

	p.logger.DebugContext(ctx, "published contact.message event",
		slog.String("message_id", data.MessageID),
	)

	return nil
}
