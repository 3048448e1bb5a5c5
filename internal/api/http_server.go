package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
)

const requestTimeout = 30 * time.Second

// Server groups the HTTP layer dependencies.
type Server struct {
	inventory application.Inventory
	orders    application.Orders
	payments  application.Payments
	logger    *zap.Logger
}

func NewServer(
	inventory application.Inventory,
	orders application.Orders,
	payments application.Payments,
	logger *zap.Logger,
) *Server {
	return &Server{
		inventory: inventory,
		orders:    orders,
		payments:  payments,
		logger:    logger.Named("http"),
	}
}

// logRequests writes one access line per request through the server logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr))
		}()
		next.ServeHTTP(ww, r)
	})
}

// Routes builds the router with every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Get("/swagger.json", s.handleSwaggerJson)

	r.Route("/api/inventory/{productId}", func(r chi.Router) {
		r.Get("/", s.handleGetAvailability)
		r.Post("/reserve", s.handleReserve)
		r.Post("/release", s.handleRelease)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", s.handleCreateOrder)
		r.Get("/", s.handleListOrders)
		r.Get("/{id}", s.handleGetOrder)
		r.Put("/{id}/status", s.handleUpdateOrderStatus)
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.Post("/process", s.handleProcessPayment)
		r.Get("/{transactionId}", s.handleGetPayment)
	})

	return r
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleSwaggerJson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(openAPISpec))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError maps service errors onto status codes. Unclassified errors are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
