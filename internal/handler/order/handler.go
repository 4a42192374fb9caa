// Package order exposes order placement and lookup.
package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	orderService "github.com/issac8080/aurashop/internal/service/order"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler serves orders.
type Handler struct {
	orders *orderService.Service
}

// New builds the handler.
func New(orders *orderService.Service) *Handler {
	return &Handler{orders: orders}
}

// RegisterRoutes mounts the order endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.HandleCreate)
	r.Get("/orders/{orderID}", h.HandleGet)
	r.Post("/orders/{orderID}/cancel", h.HandleCancel)
	r.Get("/users/{userID}/orders", h.HandleForUser)
}

type createRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
}

// HandleCreate places an order from the session's cart.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	placed, err := h.orders.CreateFromCart(req.SessionID, req.UserID)
	if err != nil {
		if errors.Is(err, orderService.ErrEmptyCart) {
			utils.RespondError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to place order")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, placed)
}

// HandleGet returns one order by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	placed, err := h.orders.Get(chi.URLParam(r, "orderID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "order not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, placed)
}

// HandleCancel cancels a placed order, refunding the total as store credit
// and reversing earned cashback.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.orders.Cancel(chi.URLParam(r, "orderID"))
	if err != nil {
		switch {
		case errors.Is(err, orderService.ErrOrderNotFound):
			utils.RespondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, orderService.ErrNotCancelable):
			utils.RespondError(w, http.StatusConflict, "order cannot be cancelled")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to cancel order")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, cancelled)
}

// HandleForUser lists a user's orders, newest first.
func (h *Handler) HandleForUser(w http.ResponseWriter, r *http.Request) {
	orders := h.orders.ForUser(chi.URLParam(r, "userID"))
	if orders == nil {
		orders = []orderService.Order{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}
