package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

type orderItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type createOrderRequest struct {
	CustomerID  string             `json:"customerId"`
	Items       []orderItemRequest `json:"items"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
}

func (req createOrderRequest) toOrder() *domain.Order {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &domain.Order{
		CustomerID:  req.CustomerID,
		Items:       items,
		TotalAmount: req.TotalAmount,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/orders
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	order, err := s.orders.CreateOrder(r.Context(), req.toOrder())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/orders/"+order.ID.String())
	writeJSON(w, http.StatusCreated, order)
}

// GET /api/orders/{id}
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "order id is invalid")
		return
	}

	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GET /api/orders?page=&pageSize=
func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page")
	pageSize := queryInt(r, "pageSize")

	orders, err := s.orders.ListOrders(r.Context(), page, pageSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// PUT /api/orders/{id}/status
func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "order id is invalid")
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	order, err := s.orders.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// queryInt returns 0 for a missing or malformed value; the service treats
// that as "use the default".
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
