// Package wallet exposes AuraPoints balances and transactions.
package wallet

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	walletService "github.com/issac8080/aurashop/internal/service/wallet"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler serves wallet state.
type Handler struct {
	wallets *walletService.Service
}

// New builds the handler.
func New(wallets *walletService.Service) *Handler {
	return &Handler{wallets: wallets}
}

// RegisterRoutes mounts the wallet endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/users/{userID}/wallet", h.HandleWallet)
	r.Get("/users/{userID}/wallet/transactions", h.HandleTransactions)
	r.Get("/wallet/preview-cashback", h.HandlePreview)
}

// HandleWallet returns the wallet snapshot, expired points swept.
func (h *Handler) HandleWallet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	utils.RespondJSON(w, http.StatusOK, h.wallets.Wallet(userID))
}

// HandleTransactions returns recent transactions, newest first.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	txns := h.wallets.Transactions(userID, limit)
	if txns == nil {
		txns = []walletService.Transaction{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

// HandlePreview reports the cashback an order total would earn.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	total, err := strconv.ParseFloat(r.URL.Query().Get("order_total"), 64)
	if err != nil || total < 0 {
		utils.RespondError(w, http.StatusBadRequest, "order_total must be a non-negative number")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]float64{
		"cashback": walletService.CashbackFor(total),
		"rate":     walletService.RateFor(total),
	})
}
