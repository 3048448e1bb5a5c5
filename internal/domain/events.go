package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/rodolfodevapp/eventshop-messaging-go/core/primitives"
	"github.com/shopspring/decimal"
)

// Inventory adjustment reasons.
const (
	ReasonReserved    = "RESERVED"
	ReasonReleased    = "RELEASED"
	ReasonInitialLoad = "INITIAL_LOAD"
)

// ProductCreated, consumed from catalog.events.
type ProductCreatedPayload struct {
	ProductID     uuid.UUID `json:"productId"`
	Sku           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAtUtc  time.Time `json:"createdAtUtc"`
	IsActive      bool      `json:"isActive"`
}

type InventoryAdjustedEvent struct {
	primitives.BaseEvent
	ProductID         string    `json:"productId"`
	AvailableQuantity int       `json:"availableQuantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	Reason            string    `json:"reason"`
	OccurredAtUtc     time.Time `json:"occurredAtUtc"`
}

func NewInventoryAdjustedEvent(a Availability, reason string) *InventoryAdjustedEvent {
	ev := &InventoryAdjustedEvent{
		BaseEvent:         primitives.NewBaseEvent(),
		ProductID:         a.ProductID,
		AvailableQuantity: a.AvailableQuantity,
		ReservedQuantity:  a.ReservedQuantity,
		Reason:            reason,
		OccurredAtUtc:     time.Now().UTC(),
	}
	ev.SetRoutingKey("InventoryAdjusted")
	return ev
}

type OrderCreatedLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderCreatedEvent struct {
	primitives.BaseEvent
	OrderID      uuid.UUID          `json:"orderId"`
	CustomerID   string             `json:"customerId"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	CreatedAtUtc time.Time          `json:"createdAtUtc"`
	Lines        []OrderCreatedLine `json:"lines"`
}

func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	lines := make([]OrderCreatedLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, OrderCreatedLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	ev := &OrderCreatedEvent{
		BaseEvent:    primitives.NewBaseEvent(),
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		TotalAmount:  o.TotalAmount,
		CreatedAtUtc: o.CreatedAt,
		Lines:        lines,
	}
	ev.SetRoutingKey("OrderCreated")
	return ev
}

type OrderStatusChangedEvent struct {
	primitives.BaseEvent
	OrderID      uuid.UUID   `json:"orderId"`
	From         OrderStatus `json:"from"`
	To           OrderStatus `json:"to"`
	UpdatedAtUtc time.Time   `json:"updatedAtUtc"`
}

func NewOrderStatusChangedEvent(orderID uuid.UUID, from, to OrderStatus, at time.Time) *OrderStatusChangedEvent {
	ev := &OrderStatusChangedEvent{
		BaseEvent:    primitives.NewBaseEvent(),
		OrderID:      orderID,
		From:         from,
		To:           to,
		UpdatedAtUtc: at,
	}
	ev.SetRoutingKey("OrderStatusChanged")
	return ev
}

type PaymentProcessedEvent struct {
	primitives.BaseEvent
	TransactionID uuid.UUID       `json:"transactionId"`
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PaymentStatus   `json:"status"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

func NewPaymentProcessedEvent(tx *PaymentTransaction) *PaymentProcessedEvent {
	ev := &PaymentProcessedEvent{
		BaseEvent:     primitives.NewBaseEvent(),
		TransactionID: tx.TransactionID,
		OrderID:       tx.OrderID,
		Amount:        tx.Amount,
		Status:        tx.Status,
		ProcessedAt:   tx.ProcessedAt,
	}
	ev.SetRoutingKey("PaymentProcessed")
	return ev
}
