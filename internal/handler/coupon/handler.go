// Package coupon exposes the discount games and code validation.
package coupon

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	couponService "github.com/issac8080/aurashop/internal/service/coupon"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler serves the discount games.
type Handler struct {
	coupons *couponService.Service
}

// New builds the handler.
func New(coupons *couponService.Service) *Handler {
	return &Handler{coupons: coupons}
}

// RegisterRoutes mounts the coupon endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/coupons/spin", h.playGame(couponService.GameSpin))
	r.Post("/coupons/jackpot", h.playGame(couponService.GameJackpot))
	r.Post("/coupons/scratch", h.playGame(couponService.GameScratch))
	r.Get("/coupons/validate", h.HandleValidate)
}

type playRequest struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) playGame(game string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SessionID == "" {
			utils.RespondError(w, http.StatusBadRequest, "session_id is required")
			return
		}

		result, err := h.coupons.Play(game, req.SessionID)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondJSON(w, http.StatusOK, result)
	}
}

// HandleValidate checks a code against an order total.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.RespondError(w, http.StatusBadRequest, "code is required")
		return
	}
	total, err := strconv.ParseFloat(r.URL.Query().Get("order_total"), 64)
	if err != nil || total < 0 {
		utils.RespondError(w, http.StatusBadRequest, "order_total must be a non-negative number")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.coupons.Validate(code, total))
}
