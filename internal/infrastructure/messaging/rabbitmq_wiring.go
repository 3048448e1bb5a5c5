package messaging

import (
	"context"
	"fmt"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	messaging "github.com/rodolfodevapp/eventshop-messaging-go/rabbitmq"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
)

const (
	OrdersExchange  = "orders.events"
	CatalogExchange = "catalog.events"

	producerQueuePrefix = "orders.dispatcher.v1"
	catalogQueuePrefix  = "orders.catalog-events.v1"
)

type EventBuses struct {
	// Producer publishes outbox messages to orders.events.
	Producer *messaging.RabbitMqEventBus
	// CatalogConsumer receives catalog.events.
	CatalogConsumer *messaging.RabbitMqEventBus
}

func options(rabbitUri, exchange, queuePrefix string) messaging.RabbitMqOptions {
	return messaging.RabbitMqOptions{
		URI:          rabbitUri,
		ExchangeName: exchange,
		QueuePrefix:  queuePrefix,
		Prefetch:     32,
		RetryDelayMs: 30000,
	}
}

func NewEventBuses(rabbitUri string) EventBuses {
	return EventBuses{
		Producer:        messaging.NewRabbitMqEventBus(options(rabbitUri, OrdersExchange, producerQueuePrefix), nil, nil),
		CatalogConsumer: messaging.NewRabbitMqEventBus(options(rabbitUri, CatalogExchange, catalogQueuePrefix), nil, nil),
	}
}

// Publish adapts the producer bus to the outbox dispatcher.
func (b EventBuses) Publish(ctx context.Context, envelope *primitives.IntegrationEventEnvelope) error {
	return b.Producer.Publish(ctx, envelope)
}

func RegisterCatalogSubscriptions(
	ctx context.Context,
	bus *messaging.RabbitMqEventBus,
	productCreatedHandler application.EventHandler,
) error {
	bus.Subscribe("ProductCreated", productCreatedHandler)

	if err := bus.StartConsumers(ctx); err != nil {
		return fmt.Errorf("start catalog consumers: %w", err)
	}
	return nil
}
