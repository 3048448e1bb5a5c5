package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

type PaymentTransaction struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"paymentMethod"`
	Status        PaymentStatus   `json:"status"`
	ProcessedAt   time.Time       `json:"processedAt"`
}

// PaymentOutcomeDecider stands in for a payment gateway.
type PaymentOutcomeDecider interface {
	Decide() PaymentStatus
}

// DeciderFunc adapts a plain function to PaymentOutcomeDecider.
type DeciderFunc func() PaymentStatus

func (f DeciderFunc) Decide() PaymentStatus { return f() }
