// Package order turns a session cart into placed orders and drives wallet
// cashback.
package order

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/internal/service/track"
	"github.com/issac8080/aurashop/internal/service/wallet"
)

// Order lifecycle states.
const (
	StatusPlaced    = "placed"
	StatusCancelled = "cancelled"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrNotCancelable = errors.New("order cannot be cancelled")
)

// Item is one order line.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order.
type Order struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Cashback  float64   `json:"cashback,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Service creates and retrieves orders.
type Service struct {
	catalog catalog.Store
	wallets *wallet.Service
	tracker *track.Service

	mu     sync.RWMutex
	orders map[string]*Order
	byUser map[string][]string
}

// NewService wires the order flow. wallets and tracker may be nil in tests
// that only exercise pricing.
func NewService(store catalog.Store, wallets *wallet.Service, tracker *track.Service) *Service {
	return &Service{
		catalog: store,
		wallets: wallets,
		tracker: tracker,
		orders:  make(map[string]*Order),
		byUser:  make(map[string][]string),
	}
}

// CreateFromCart prices the session's cart against the catalog, places the
// order, clears the cart, and credits cashback when the user is known.
// Products missing from the catalog are skipped, not fatal.
func (s *Service) CreateFromCart(sessionID, userID string) (Order, error) {
	var ids []string
	if s.tracker != nil {
		ids = s.tracker.Cart(sessionID)
	}
	if len(ids) == 0 {
		return Order{}, ErrEmptyCart
	}

	var items []Item
	var total float64
	for _, id := range ids {
		p, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		items = append(items, Item{ProductID: p.ID, Name: p.Name, Quantity: 1, Price: p.Price})
		total += p.Price
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := &Order{
		ID:        newOrderID(),
		SessionID: sessionID,
		UserID:    userID,
		Items:     items,
		Total:     total,
		Status:    StatusPlaced,
		CreatedAt: time.Now().UTC(),
	}
	if userID != "" && s.wallets != nil {
		txn := s.wallets.Credit(userID, order.ID, total)
		order.Cashback = txn.Amount
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	if userID != "" {
		s.byUser[userID] = append(s.byUser[userID], order.ID)
	}
	s.mu.Unlock()

	if s.tracker != nil {
		s.tracker.ClearCart(sessionID)
	}
	return *order, nil
}

// Get returns an order by id.
func (s *Service) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return *order, nil
}

// ForUser returns a user's orders, newest first.
func (s *Service) ForUser(userID string) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byUser[userID]
	out := make([]Order, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if order, ok := s.orders[ids[i]]; ok {
			out = append(out, *order)
		}
	}
	return out
}

// Cancel moves a placed order to cancelled and refunds the wallet when the
// order carried a user.
func (s *Service) Cancel(id string) (Order, error) {
	s.mu.Lock()
	order, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return Order{}, ErrOrderNotFound
	}
	if order.Status != StatusPlaced {
		s.mu.Unlock()
		return Order{}, fmt.Errorf("%w: status %s", ErrNotCancelable, order.Status)
	}
	order.Status = StatusCancelled
	cp := *order
	s.mu.Unlock()

	if cp.UserID != "" && s.wallets != nil {
		s.wallets.Refund(cp.UserID, cp.ID, cp.Total)
		if cp.Cashback > 0 {
			// The cashback earned on this order is clawed back. The refund
			// above guarantees the balance covers it.
			_, _ = s.wallets.Deduct(cp.UserID, cp.Cashback, cp.ID)
		}
	}
	return cp, nil
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
