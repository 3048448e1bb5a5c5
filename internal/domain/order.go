package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
	OrderShipped   OrderStatus = "Shipped"
)

var orderStatuses = []OrderStatus{OrderPending, OrderCompleted, OrderCancelled, OrderShipped}

// ParseOrderStatus matches name case-insensitively against the known statuses.
func ParseOrderStatus(name string) (OrderStatus, error) {
	name = strings.TrimSpace(name)
	for _, s := range orderStatuses {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  string          `json:"customerId"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ComputedTotal is the sum of quantity * unit price over all items.
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Validate checks the structure of a candidate order. It performs no I/O.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerID) == "" {
		return ErrInvalidCustomer
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, it := range o.Items {
		if it.ProductID == "" || it.Quantity <= 0 || !it.UnitPrice.IsPositive() {
			return ErrInvalidItem
		}
	}
	if computed := o.ComputedTotal(); !o.TotalAmount.Equal(computed) {
		return fmt.Errorf("%w: total %s, items %s", ErrTotalMismatch, o.TotalAmount.String(), computed.String())
	}
	return nil
}

// Demands lists the inventory demands of the order in item order.
func (o *Order) Demands() []Demand {
	demands := make([]Demand, 0, len(o.Items))
	for _, it := range o.Items {
		demands = append(demands, Demand{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return demands
}

// Place assigns identity and initial lifecycle state to a validated order.
func (o *Order) Place(now time.Time) {
	o.ID = uuid.New()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Status = OrderPending
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrderID = o.ID
	}
}

func (o *Order) SetStatus(status OrderStatus, now time.Time) {
	o.Status = status
	o.UpdatedAt = now
}
