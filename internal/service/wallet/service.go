// Package wallet implements the AuraPoints rewards balance: percentage
// cashback on orders, 30-day expiry, spend and refund.
package wallet

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cashback tiers: 5% under the threshold, 7% at or above.
const (
	RateLow       = 0.05
	RateHigh      = 0.07
	RateThreshold = 1000
	PointsTTL     = 30 * 24 * time.Hour
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"`   // credit or debit
	Source      string     `json:"source"` // aurapoints, purchase, refund
	OrderID     string     `json:"order_id,omitempty"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Expired     bool       `json:"is_expired"`
}

// Wallet is a user's balance and ledger.
type Wallet struct {
	UserID       string        `json:"user_id"`
	Balance      float64       `json:"balance"`
	TotalEarned  float64       `json:"total_earned"`
	TotalSpent   float64       `json:"total_spent"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Service owns all wallets in memory. now is injectable for expiry tests.
type Service struct {
	mu      sync.Mutex
	wallets map[string]*Wallet
	now     func() time.Time
}

// NewService builds the wallet service.
func NewService() *Service {
	return &Service{wallets: make(map[string]*Wallet), now: time.Now}
}

// NewServiceWithClock injects the clock, used by expiry tests.
func NewServiceWithClock(now func() time.Time) *Service {
	s := NewService()
	s.now = now
	return s
}

// CashbackFor returns the points earned on an order total.
func CashbackFor(orderTotal float64) float64 {
	rate := RateLow
	if orderTotal >= RateThreshold {
		rate = RateHigh
	}
	return math.Round(orderTotal*rate*100) / 100
}

// RateFor returns the applicable cashback rate as a percentage.
func RateFor(orderTotal float64) float64 {
	if orderTotal >= RateThreshold {
		return RateHigh * 100
	}
	return RateLow * 100
}

// Wallet returns the user's wallet, creating it on first touch and sweeping
// expired points.
func (s *Service) Wallet(userID string) Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.get(userID)
	s.sweepExpired(w)
	return snapshot(w)
}

// Credit adds cashback for an order and returns the ledger entry.
func (s *Service) Credit(userID, orderID string, orderTotal float64) Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(userID)
	amount := CashbackFor(orderTotal)
	now := s.now().UTC()
	expires := now.Add(PointsTTL)
	txn := Transaction{
		ID:          newTxnID(),
		UserID:      userID,
		Amount:      amount,
		Type:        "credit",
		Source:      "aurapoints",
		OrderID:     orderID,
		Description: fmt.Sprintf("%.0f%% AuraPoints on order %s", RateFor(orderTotal), orderID),
		ExpiresAt:   &expires,
		CreatedAt:   now,
	}
	w.Balance += amount
	w.TotalEarned += amount
	w.Transactions = append(w.Transactions, txn)
	return txn
}

// Deduct spends balance on an order.
func (s *Service) Deduct(userID string, amount float64, orderID string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(userID)
	s.sweepExpired(w)
	if amount <= 0 || w.Balance < amount {
		return Transaction{}, ErrInsufficientBalance
	}
	now := s.now().UTC()
	txn := Transaction{
		ID:          newTxnID(),
		UserID:      userID,
		Amount:      amount,
		Type:        "debit",
		Source:      "purchase",
		OrderID:     orderID,
		Description: fmt.Sprintf("Paid from wallet for order %s", orderID),
		CreatedAt:   now,
	}
	w.Balance -= amount
	w.TotalSpent += amount
	w.Transactions = append(w.Transactions, txn)
	return txn, nil
}

// Refund credits an order refund back to the wallet. Refunds do not expire.
func (s *Service) Refund(userID, orderID string, amount float64) Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(userID)
	now := s.now().UTC()
	txn := Transaction{
		ID:          newTxnID(),
		UserID:      userID,
		Amount:      amount,
		Type:        "credit",
		Source:      "refund",
		OrderID:     orderID,
		Description: fmt.Sprintf("Refund for order %s", orderID),
		CreatedAt:   now,
	}
	w.Balance += amount
	w.Transactions = append(w.Transactions, txn)
	return txn
}

// Transactions returns the most recent limit ledger entries, newest first.
func (s *Service) Transactions(userID string, limit int) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(userID)
	s.sweepExpired(w)
	txns := w.Transactions
	out := make([]Transaction, 0, len(txns))
	for i := len(txns) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, txns[i])
	}
	return out
}

// get returns the wallet for userID, creating it if needed. Caller holds mu.
func (s *Service) get(userID string) *Wallet {
	w, ok := s.wallets[userID]
	if !ok {
		w = &Wallet{UserID: userID, CreatedAt: s.now().UTC()}
		s.wallets[userID] = w
	}
	return w
}

// sweepExpired drops lapsed AuraPoints from the balance. Caller holds mu.
func (s *Service) sweepExpired(w *Wallet) {
	now := s.now().UTC()
	var lapsed float64
	for i := range w.Transactions {
		txn := &w.Transactions[i]
		if txn.Type == "credit" && txn.Source == "aurapoints" && !txn.Expired &&
			txn.ExpiresAt != nil && now.After(*txn.ExpiresAt) {
			txn.Expired = true
			lapsed += txn.Amount
		}
	}
	if lapsed > 0 {
		w.Balance = math.Max(0, w.Balance-lapsed)
	}
}

func snapshot(w *Wallet) Wallet {
	cp := *w
	cp.Transactions = append([]Transaction(nil), w.Transactions...)
	return cp
}

func newTxnID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}
