// Package assistant generates streamed shopping replies: a deterministic,
// catalog-grounded rule engine by default, with an optional LLM path when
// model credentials are configured. Either path produces the same wire
// contract: text deltas plus a terminal frame of product ids and actions.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/internal/service/order"
	"github.com/issac8080/aurashop/internal/service/track"
	"github.com/issac8080/aurashop/pkg/assistantwire"
)

const maxCards = 4

// productIDPattern matches catalog ids referenced in generated text.
var productIDPattern = regexp.MustCompile(`P\d{3,5}`)

// budgetPattern pulls an upper price bound out of phrases like
// "under ₹2000" or "below 1,500".
var budgetPattern = regexp.MustCompile(`(?i)(?:under|below|less than|upto|up to|within)\s*₹?\s*([0-9][0-9,]*)`)

// Responder produces one reply per request.
type Responder struct {
	catalog catalog.Store
	tracker *track.Service
	orders  *order.Service
	llm     *LLM
	log     zerolog.Logger
}

// NewResponder wires the reply pipeline. llm may be nil; tracker and orders
// may be nil in tests that only exercise search.
func NewResponder(store catalog.Store, tracker *track.Service, orders *order.Service, llm *LLM, log zerolog.Logger) *Responder {
	return &Responder{catalog: store, tracker: tracker, orders: orders, llm: llm, log: log}
}

// Respond generates the reply for one request, emitting text deltas through
// emit in order and returning the terminal frame. emit errors abort the
// stream (the peer went away); generation errors fall back to the rule
// engine, never to a dead stream.
func (r *Responder) Respond(ctx context.Context, req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	if r.llm != nil {
		final, err := r.respondLLM(ctx, req, emit)
		if err == nil {
			return final, nil
		}
		if errors.Is(err, errPeerGone) {
			return assistantwire.Final{}, err
		}
		r.log.Warn().Err(err).Msg("llm responder failed, using rule engine")
	}
	return r.respondRules(ctx, req, emit)
}

// errPeerGone marks emit failures: the client disconnected mid-stream.
var errPeerGone = errors.New("client disconnected")

// ---- rule engine ----

func (r *Responder) respondRules(_ context.Context, req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	msg := strings.ToLower(strings.TrimSpace(req.Message))

	switch {
	case msg == strings.ToLower(assistantwire.ConfirmOrderMessage):
		return r.confirmOrder(req, emit)
	case msg == strings.ToLower(assistantwire.ChangeOrderMessage):
		return r.changeDetails(emit)
	case isGreeting(msg):
		return r.greet(emit)
	case r.wantsQuickOrder(msg, req.SessionID):
		return r.quickOrderSummary(req, emit)
	case wantsDiscounts(msg):
		return r.discounts(emit)
	default:
		return r.search(req, emit)
	}
}

func (r *Responder) confirmOrder(req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	if r.orders == nil {
		return emptyFinal(), streamText(emit, "Ordering isn't available right now.")
	}
	userID := ""
	if req.Context != nil && req.Context.UserID != nil {
		userID = *req.Context.UserID
	}
	placed, err := r.orders.CreateFromCart(req.SessionID, userID)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			return emptyFinal(), streamText(emit, "Your cart is empty, so there's nothing to order yet. Want me to suggest something?")
		}
		r.log.Error().Err(err).Msg("place order")
		return emptyFinal(), streamText(emit, "Something went wrong while placing the order. Please try again.")
	}

	text := fmt.Sprintf("Done! Order %s is placed for ₹%.0f.", placed.ID, placed.Total)
	if placed.Cashback > 0 {
		text += fmt.Sprintf(" You earned ₹%.0f in AuraPoints.", placed.Cashback)
	}
	final := assistantwire.Final{Actions: []assistantwire.Action{
		{Type: assistantwire.ActionNavigate, Label: "View order", Payload: "/orders/" + placed.ID},
	}}
	return final, streamText(emit, text)
}

func (r *Responder) changeDetails(emit func(string) error) (assistantwire.Final, error) {
	final := assistantwire.Final{Actions: []assistantwire.Action{
		{Type: assistantwire.ActionQuickOrderOption, Label: "Deliver to my saved address"},
		{Type: assistantwire.ActionQuickOrderOption, Label: "Pick up in store"},
	}}
	return final, streamText(emit, "Sure, what would you like to change?")
}

func (r *Responder) greet(emit func(string) error) (assistantwire.Final, error) {
	final := assistantwire.Final{Actions: []assistantwire.Action{
		{Type: assistantwire.ActionQuickOrderOption, Label: "Show trending products"},
		{Type: assistantwire.ActionQuickOrderOption, Label: "Find me something under ₹2000"},
	}}
	return final, streamText(emit, "Hi! I can help you find products, compare options, and place orders. What are you looking for today?")
}

func (r *Responder) wantsQuickOrder(msg, sessionID string) bool {
	if r.tracker == nil || len(r.tracker.Cart(sessionID)) == 0 {
		return false
	}
	for _, kw := range []string{"place order", "place my order", "order now", "checkout", "check out", "buy my cart"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func (r *Responder) quickOrderSummary(req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	ids := r.tracker.Cart(req.SessionID)
	var total float64
	var names []string
	for _, id := range ids {
		if p, ok := r.catalog.Get(id); ok {
			total += p.Price
			names = append(names, p.Name)
		}
	}
	text := fmt.Sprintf("You have %d item(s) in your cart (%s) for a total of ₹%.0f. Shall I place the order?",
		len(names), strings.Join(names, ", "), total)
	final := assistantwire.Final{
		ProductIDs: append([]string(nil), ids...),
		Actions: []assistantwire.Action{
			{Type: assistantwire.ActionQuickOrderConfirm, Label: "Confirm"},
			{Type: assistantwire.ActionQuickOrderChange, Label: "Change details"},
		},
	}
	return final, streamText(emit, text)
}

func (r *Responder) discounts(emit func(string) error) (assistantwire.Final, error) {
	final := assistantwire.Final{Actions: []assistantwire.Action{
		{Type: assistantwire.ActionSpinWheel, Label: "Spin & win"},
	}}
	return final, streamText(emit, "You can win up to ₹2,000 off on the discounts page. Spin the wheel, try the jackpot, or scratch a card.")
}

func (r *Responder) search(req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	query := req.Message
	filter := catalog.Filter{Query: query, Limit: maxCards}
	if budget, ok := parseBudget(query); ok {
		filter.MaxPrice = &budget
	}

	products := r.catalog.List(filter)
	if len(products) == 0 && filter.MaxPrice != nil {
		// Budget too tight: show the closest matches instead of nothing.
		products = r.catalog.List(catalog.Filter{Query: query, Limit: maxCards})
	}
	if len(products) == 0 {
		final := assistantwire.Final{Actions: []assistantwire.Action{
			{Type: assistantwire.ActionNavigate, Label: "Browse all products", Payload: "/products"},
		}}
		return final, streamText(emit, "I couldn't find a match for that. Could you tell me a category or budget to narrow it down?")
	}

	var sb strings.Builder
	sb.WriteString("Here are some options:")
	ids := make([]string, 0, len(products))
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("\n- %s: ₹%.0f, rated %.1f (%s)", p.Name, p.Price, p.Rating, p.ID))
		ids = append(ids, p.ID)
	}

	final := assistantwire.Final{
		ProductIDs: ids,
		Actions: []assistantwire.Action{
			{Type: assistantwire.ActionNavigate, Label: "View all", Payload: "/products"},
		},
	}
	return final, streamText(emit, sb.String())
}

// ---- llm path ----

func (r *Responder) respondLLM(ctx context.Context, req assistantwire.Request, emit func(string) error) (assistantwire.Final, error) {
	stream, err := r.llm.Stream(ctx, r.systemPrompt(req), historyMessages(req.History), req.Message)
	if err != nil {
		return assistantwire.Final{}, err
	}
	defer stream.Close()

	var content strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			// Nothing emitted yet means the rule engine can still take over.
			if content.Len() == 0 {
				return assistantwire.Final{}, recvErr
			}
			break
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		content.WriteString(chunk.Content)
		if err := emit(chunk.Content); err != nil {
			return assistantwire.Final{}, fmt.Errorf("%w: %v", errPeerGone, err)
		}
	}

	ids := referencedProductIDs(content.String(), r.catalog)
	return assistantwire.Final{
		ProductIDs: ids,
		Actions:    r.llmActions(req, ids),
	}, nil
}

// systemPrompt grounds the model in the catalog and the session's behavior.
func (r *Responder) systemPrompt(req assistantwire.Request) string {
	var sb strings.Builder
	sb.WriteString("You are the AuraShop AI shopping assistant. Be friendly and concise. ")
	sb.WriteString("Always mention product ids (P001 style) when recommending so the storefront can render cards. ")
	sb.WriteString("Recommend 2-4 products per reply and respect stated budgets.\n\nCatalog:\n")
	for _, p := range r.catalog.List(catalog.Filter{}) {
		sb.WriteString(fmt.Sprintf("- %s: %s, ₹%.0f, %s, rated %.1f\n", p.ID, p.Name, p.Price, p.Category, p.Rating))
	}
	if r.tracker != nil {
		sctx := r.tracker.Context(req.SessionID)
		if len(sctx.CartIDs) > 0 {
			sb.WriteString("\nCart product ids: " + strings.Join(sctx.CartIDs, ", "))
		}
		if len(sctx.SearchQueries) > 0 {
			sb.WriteString("\nRecent searches: " + strings.Join(sctx.SearchQueries, ", "))
		}
		if len(sctx.BudgetSignals) > 0 {
			sb.WriteString(fmt.Sprintf("\nBudget signal: under ₹%.0f", sctx.BudgetSignals[len(sctx.BudgetSignals)-1]))
		}
	}
	return sb.String()
}

// llmActions layers deterministic actions over generated text so the action
// contract stays typed regardless of what the model wrote.
func (r *Responder) llmActions(req assistantwire.Request, ids []string) []assistantwire.Action {
	msg := strings.ToLower(req.Message)
	if r.wantsQuickOrder(msg, req.SessionID) {
		return []assistantwire.Action{
			{Type: assistantwire.ActionQuickOrderConfirm, Label: "Confirm"},
			{Type: assistantwire.ActionQuickOrderChange, Label: "Change details"},
		}
	}
	if wantsDiscounts(msg) {
		return []assistantwire.Action{{Type: assistantwire.ActionSpinWheel, Label: "Spin & win"}}
	}
	if len(ids) > 0 {
		return []assistantwire.Action{{Type: assistantwire.ActionNavigate, Label: "View all", Payload: "/products"}}
	}
	return nil
}

// ---- helpers ----

func emptyFinal() assistantwire.Final {
	return assistantwire.Final{ProductIDs: []string{}, Actions: []assistantwire.Action{}}
}

// streamText emits text word by word so the client renders incrementally
// even on the deterministic path.
func streamText(emit func(string) error, text string) error {
	words := strings.SplitAfter(text, " ")
	const perChunk = 4
	for i := 0; i < len(words); i += perChunk {
		end := i + perChunk
		if end > len(words) {
			end = len(words)
		}
		if err := emit(strings.Join(words[i:end], "")); err != nil {
			return fmt.Errorf("%w: %v", errPeerGone, err)
		}
	}
	return nil
}

func isGreeting(msg string) bool {
	switch msg {
	case "hi", "hello", "hey", "hi!", "hello!", "hey!", "yo":
		return true
	}
	return false
}

func wantsDiscounts(msg string) bool {
	for _, kw := range []string{"discount", "coupon", "offer", "deal", "spin", "jackpot", "scratch"} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func parseBudget(msg string) (float64, bool) {
	m := budgetPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// referencedProductIDs extracts ids mentioned in generated text, keeping only
// ids that exist in the catalog, deduplicated in first-mention order.
func referencedProductIDs(content string, store catalog.Store) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, id := range productIDPattern.FindAllString(content, -1) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := store.Get(id); !ok {
			continue
		}
		out = append(out, id)
		if len(out) == 6 {
			break
		}
	}
	return out
}

func historyMessages(history []assistantwire.HistoryTurn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}
	out := make([]*schema.Message, 0, len(history))
	for _, h := range history {
		if h.Content == "" {
			continue
		}
		if h.Role == "assistant" {
			out = append(out, schema.AssistantMessage(h.Content, nil))
		} else {
			out = append(out, schema.UserMessage(h.Content))
		}
	}
	return out
}
