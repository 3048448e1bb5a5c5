package application

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type EventHandler interface {
	Handle(ctx context.Context, ev primitives.Event) error
}

// ProductCreatedHandler loads the announced stock of a new catalog product.
// Malformed messages are logged and acknowledged; store failures are returned
// so the bus can redeliver.
type ProductCreatedHandler struct {
	store  *InventoryStore
	outbox OutboxWriter
	logger *zap.Logger
}

func NewProductCreatedHandler(store *InventoryStore, outbox OutboxWriter, logger *zap.Logger) *ProductCreatedHandler {
	return &ProductCreatedHandler{
		store:  store,
		outbox: outbox,
		logger: logger.Named("product-created"),
	}
}

func (h *ProductCreatedHandler) Handle(ctx context.Context, ev primitives.Event) error {
	env, ok := ev.(*primitives.IntegrationEventEnvelope)
	if !ok {
		h.logger.Warn("invalid event type", zap.String("type", typeNameOf(ev)))
		return nil
	}
	if env.Type != "ProductCreated" {
		return nil
	}

	var payload domain.ProductCreatedPayload
	if err := json.Unmarshal([]byte(env.PayloadJSON), &payload); err != nil {
		h.logger.Warn("failed to unmarshal payload", zap.Error(err))
		return nil
	}

	productID := strings.TrimSpace(payload.Sku)
	if productID == "" {
		h.logger.Warn("missing sku", zap.String("catalog_product_id", payload.ProductID.String()))
		return nil
	}
	if payload.StockQuantity < 0 {
		h.logger.Warn("negative stock quantity",
			zap.String("product_id", productID),
			zap.Int("stock_quantity", payload.StockQuantity))
		return nil
	}

	a, err := h.store.SetAvailable(ctx, productID, payload.StockQuantity)
	if err != nil {
		return err
	}

	h.logger.Info("inventory loaded from catalog",
		zap.String("product_id", a.ProductID),
		zap.Int("available", a.AvailableQuantity),
		zap.Int("reserved", a.ReservedQuantity))

	enqueue(ctx, h.outbox, domain.NewInventoryAdjustedEvent(a, domain.ReasonInitialLoad))
	return nil
}
