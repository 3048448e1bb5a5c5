package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type paymentRequest struct {
	OrderID       uuid.UUID       `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type paymentResponse struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	ProcessedAt   time.Time       `json:"processedAt"`
	Message       string          `json:"message"`
}

func newPaymentResponse(tx *domain.PaymentTransaction, message string) paymentResponse {
	return paymentResponse{
		TransactionID: tx.TransactionID,
		OrderID:       tx.OrderID,
		Amount:        tx.Amount,
		PaymentMethod: tx.Method,
		Status:        string(tx.Status),
		ProcessedAt:   tx.ProcessedAt,
		Message:       message,
	}
}

// POST /api/payments/process
func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	tx, ok, err := s.payments.ProcessPayment(r.Context(), application.PaymentRequest{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Method:  req.PaymentMethod,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !ok {
		writeJSON(w, http.StatusBadRequest, newPaymentResponse(tx, "Payment failed. Please try again."))
		return
	}
	writeJSON(w, http.StatusOK, newPaymentResponse(tx, "Payment processed successfully."))
}

// GET /api/payments/{transactionId}
func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		writeBadRequest(w, "transaction id is invalid")
		return
	}

	tx, err := s.payments.GetPaymentStatus(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPaymentResponse(tx, "Payment status retrieved successfully."))
}
