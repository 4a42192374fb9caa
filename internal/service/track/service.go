// Package track ingests fire-and-forget behavioral events and folds them
// into per-session context consumed by the assistant responder and the cart
// endpoint. Events flow through an in-process pub/sub so ingestion never
// blocks the HTTP path.
package track

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
)

const topicEvents = "storefront.events"

// Behavioral event types accepted from the storefront.
const (
	EventPageView     = "page_view"
	EventProductClick = "product_click"
	EventSearch       = "search"
	EventCartAdd      = "cart_add"
	EventCartRemove   = "cart_remove"
	EventTimeSpent    = "time_spent"
	EventBudgetSignal = "budget_signal"
	EventCategoryView = "category_view"
)

// Event is one behavioral signal. Unknown types are dropped, not rejected.
type Event struct {
	EventType       string  `json:"event_type"`
	SessionID       string  `json:"session_id"`
	UserID          string  `json:"user_id,omitempty"`
	ProductID       string  `json:"product_id,omitempty"`
	Category        string  `json:"category,omitempty"`
	Query           string  `json:"query,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// SessionContext is the folded view of one session's events.
type SessionContext struct {
	CartIDs          []string  `json:"cart_ids"`
	ViewedProductIDs []string  `json:"viewed_product_ids"`
	CategoriesViewed []string  `json:"categories_viewed"`
	SearchQueries    []string  `json:"search_queries"`
	BudgetSignals    []float64 `json:"budget_signals"`
}

type sessionState struct {
	cart       []string
	viewed     []string
	categories []string
	queries    []string
	budgets    []float64
}

// Service owns the event bus and the per-session fold.
type Service struct {
	bus *gochannel.GoChannel
	log zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// New starts the bus and its single consumer. The consumer stops when ctx is
// cancelled; Close releases the bus.
func New(ctx context.Context, log zerolog.Logger) (*Service, error) {
	bus := gochannel.NewGoChannel(gochannel.Config{
		// Publishing acks only after the fold applied, so a session context
		// read that follows a publish observes the event.
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NopLogger{})

	msgs, err := bus.Subscribe(ctx, topicEvents)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topicEvents, err)
	}

	s := &Service{
		bus:      bus,
		log:      log,
		sessions: make(map[string]*sessionState),
	}
	go s.consume(msgs)
	return s, nil
}

// Close shuts the bus down.
func (s *Service) Close() error { return s.bus.Close() }

// Track publishes one event. Callers treat it as fire-and-forget; a failed
// publish is logged, never surfaced to the storefront.
func (s *Service) Track(ctx context.Context, ev Event) error {
	if ev.SessionID == "" {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.bus.Publish(topicEvents, msg)
}

func (s *Service) consume(msgs <-chan *message.Message) {
	for msg := range msgs {
		var ev Event
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			s.log.Warn().Err(err).Msg("dropping malformed event")
			msg.Ack()
			continue
		}
		s.apply(ev)
		msg.Ack()
	}
}

func (s *Service) apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[ev.SessionID]
	if !ok {
		state = &sessionState{}
		s.sessions[ev.SessionID] = state
	}

	switch ev.EventType {
	case EventCartAdd:
		if ev.ProductID != "" && !contains(state.cart, ev.ProductID) {
			state.cart = append(state.cart, ev.ProductID)
		}
	case EventCartRemove:
		state.cart = remove(state.cart, ev.ProductID)
	case EventProductClick:
		if ev.ProductID != "" {
			state.viewed = append(state.viewed, ev.ProductID)
		}
	case EventSearch:
		if ev.Query != "" {
			state.queries = append(state.queries, ev.Query)
		}
	case EventBudgetSignal:
		if ev.Amount > 0 {
			state.budgets = append(state.budgets, ev.Amount)
		}
	case EventCategoryView, EventPageView:
		if ev.Category != "" && !contains(state.categories, ev.Category) {
			state.categories = append(state.categories, ev.Category)
		}
	case EventTimeSpent:
		// Tracked for completeness; nothing folds from it yet.
	default:
		s.log.Debug().Str("type", ev.EventType).Msg("ignoring unknown event type")
	}
}

// Context returns a copy of the folded context for a session.
func (s *Service) Context(sessionID string) SessionContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return SessionContext{}
	}
	return SessionContext{
		CartIDs:          append([]string(nil), state.cart...),
		ViewedProductIDs: append([]string(nil), state.viewed...),
		CategoriesViewed: append([]string(nil), state.categories...),
		SearchQueries:    append([]string(nil), state.queries...),
		BudgetSignals:    append([]float64(nil), state.budgets...),
	}
}

// Cart returns the session's cart product ids in insertion order.
func (s *Service) Cart(sessionID string) []string {
	return s.Context(sessionID).CartIDs
}

// ClearCart empties the cart, typically after an order is placed.
func (s *Service) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sessionID]; ok {
		state.cart = nil
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func remove(values []string, drop string) []string {
	out := values[:0]
	for _, v := range values {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
