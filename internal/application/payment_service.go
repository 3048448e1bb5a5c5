package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

// Payments is the payment surface offered to the HTTP layer.
type Payments interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.PaymentTransaction, bool, error)
	GetPaymentStatus(ctx context.Context, transactionID uuid.UUID) (*domain.PaymentTransaction, error)
}

type PaymentRequest struct {
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Method  string
}

// CoinFlipDecider completes half of the payments.
type CoinFlipDecider struct{}

func (CoinFlipDecider) Decide() domain.PaymentStatus {
	if rand.IntN(2) == 1 {
		return domain.PaymentCompleted
	}
	return domain.PaymentFailed
}

type PaymentService struct {
	orders   domain.OrderRepository
	payments domain.PaymentRepository
	decider  domain.PaymentOutcomeDecider
	outbox   OutboxWriter
	methods  map[string]string
	now      func() time.Time
}

func NewPaymentService(
	orders domain.OrderRepository,
	payments domain.PaymentRepository,
	decider domain.PaymentOutcomeDecider,
	outbox OutboxWriter,
	allowedMethods []string,
) *PaymentService {
	methods := make(map[string]string, len(allowedMethods))
	for _, m := range allowedMethods {
		m = strings.TrimSpace(m)
		if m != "" {
			methods[strings.ToLower(m)] = m
		}
	}
	return &PaymentService{
		orders:   orders,
		payments: payments,
		decider:  decider,
		outbox:   outbox,
		methods:  methods,
		now:      time.Now,
	}
}

// ProcessPayment records one payment attempt against an order. The returned
// bool is false exactly when the attempt was recorded as Failed.
func (s *PaymentService) ProcessPayment(ctx context.Context, req PaymentRequest) (*domain.PaymentTransaction, bool, error) {
	method, ok := s.methods[strings.ToLower(strings.TrimSpace(req.Method))]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrInvalidMethod, req.Method)
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, req.OrderID)
	}

	if !order.TotalAmount.Equal(req.Amount) {
		return nil, false, fmt.Errorf("%w: amount %s, order total %s",
			domain.ErrAmountMismatch, req.Amount.String(), order.TotalAmount.String())
	}

	status := domain.PaymentFailed
	if s.decider.Decide() == domain.PaymentCompleted {
		status = domain.PaymentCompleted
	}

	tx := &domain.PaymentTransaction{
		TransactionID: uuid.New(),
		OrderID:       order.ID.String(),
		Amount:        req.Amount,
		Method:        method,
		Status:        status,
		ProcessedAt:   s.now().UTC(),
	}
	if err := s.payments.Insert(ctx, tx); err != nil {
		return nil, false, fmt.Errorf("persist payment: %w", err)
	}

	enqueue(ctx, s.outbox, domain.NewPaymentProcessedEvent(tx))
	return tx, status == domain.PaymentCompleted, nil
}

func (s *PaymentService) GetPaymentStatus(ctx context.Context, transactionID uuid.UUID) (*domain.PaymentTransaction, error) {
	tx, err := s.payments.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}
