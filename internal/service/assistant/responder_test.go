package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/internal/service/order"
	"github.com/issac8080/aurashop/internal/service/track"
	"github.com/issac8080/aurashop/internal/service/wallet"
	"github.com/issac8080/aurashop/pkg/assistantwire"
)

func newTestResponder(t *testing.T) (*Responder, *track.Service, *order.Service) {
	t.Helper()
	store := catalog.NewMemoryStore(catalog.Seed())
	tracker, err := track.New(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatalf("track.New: %v", err)
	}
	t.Cleanup(func() { tracker.Close() })
	orders := order.NewService(store, wallet.NewService(), tracker)
	return NewResponder(store, tracker, orders, nil, zerolog.Nop()), tracker, orders
}

func collect(t *testing.T) (func(string) error, *strings.Builder) {
	t.Helper()
	var sb strings.Builder
	return func(delta string) error {
		sb.WriteString(delta)
		return nil
	}, &sb
}

func TestRespondSearchWithBudget(t *testing.T) {
	r, _, _ := newTestResponder(t)
	emit, text := collect(t)

	final, err := r.Respond(context.Background(), assistantwire.Request{
		SessionID: "s1",
		Message:   "show me black shoes under 1000",
	}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(final.ProductIDs) == 0 {
		t.Fatal("expected product ids for a catalog search")
	}
	store := catalog.NewMemoryStore(catalog.Seed())
	for _, id := range final.ProductIDs {
		p, ok := store.Get(id)
		if !ok {
			t.Fatalf("unknown product id %q in final frame", id)
		}
		if p.Price > 1000 {
			t.Fatalf("product %s at ₹%.0f exceeds the stated budget", id, p.Price)
		}
	}
	if text.Len() == 0 {
		t.Fatal("expected streamed text")
	}
	if len(final.Actions) == 0 || final.Actions[0].Type != assistantwire.ActionNavigate {
		t.Fatalf("expected a navigate action, got %+v", final.Actions)
	}
}

func TestRespondQuickOrderOffersConfirmAndChange(t *testing.T) {
	r, tracker, _ := newTestResponder(t)
	ctx := context.Background()
	if err := tracker.Track(ctx, track.Event{SessionID: "s1", EventType: track.EventCartAdd, ProductID: "P006"}); err != nil {
		t.Fatalf("Track: %v", err)
	}

	emit, _ := collect(t)
	final, err := r.Respond(ctx, assistantwire.Request{SessionID: "s1", Message: "place my order"}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	var types []string
	for _, a := range final.Actions {
		types = append(types, a.Type)
	}
	want := []string{assistantwire.ActionQuickOrderConfirm, assistantwire.ActionQuickOrderChange}
	if len(types) != 2 || types[0] != want[0] || types[1] != want[1] {
		t.Fatalf("expected confirm+change actions, got %v", types)
	}
}

func TestRespondConfirmPlacesOrderAndClearsCart(t *testing.T) {
	r, tracker, orders := newTestResponder(t)
	ctx := context.Background()
	if err := tracker.Track(ctx, track.Event{SessionID: "s1", EventType: track.EventCartAdd, ProductID: "P006"}); err != nil {
		t.Fatalf("Track: %v", err)
	}

	emit, text := collect(t)
	final, err := r.Respond(ctx, assistantwire.Request{SessionID: "s1", Message: assistantwire.ConfirmOrderMessage}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(final.Actions) != 1 || final.Actions[0].Type != assistantwire.ActionNavigate {
		t.Fatalf("expected a navigate action to the order page, got %+v", final.Actions)
	}
	orderID := strings.TrimPrefix(final.Actions[0].Payload, "/orders/")
	if _, err := orders.Get(orderID); err != nil {
		t.Fatalf("order %q not found after confirmation: %v", orderID, err)
	}
	if got := tracker.Cart("s1"); len(got) != 0 {
		t.Fatalf("cart not cleared after order, still holds %v", got)
	}
	if !strings.Contains(text.String(), orderID) {
		t.Fatalf("reply %q does not mention order id %s", text.String(), orderID)
	}
}

func TestRespondConfirmWithEmptyCart(t *testing.T) {
	r, _, _ := newTestResponder(t)
	emit, text := collect(t)

	final, err := r.Respond(context.Background(), assistantwire.Request{SessionID: "s1", Message: assistantwire.ConfirmOrderMessage}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(final.Actions) != 0 {
		t.Fatalf("expected no actions for an empty cart, got %+v", final.Actions)
	}
	if !strings.Contains(strings.ToLower(text.String()), "empty") {
		t.Fatalf("reply %q does not explain the empty cart", text.String())
	}
}

func TestRespondChangeDetailsOffersOptions(t *testing.T) {
	r, _, _ := newTestResponder(t)
	emit, _ := collect(t)

	final, err := r.Respond(context.Background(), assistantwire.Request{SessionID: "s1", Message: assistantwire.ChangeOrderMessage}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(final.Actions) == 0 {
		t.Fatal("expected quick order options")
	}
	for _, a := range final.Actions {
		if a.Type != assistantwire.ActionQuickOrderOption {
			t.Fatalf("unexpected action type %q", a.Type)
		}
	}
}

func TestRespondDiscountIntent(t *testing.T) {
	r, _, _ := newTestResponder(t)
	emit, _ := collect(t)

	final, err := r.Respond(context.Background(), assistantwire.Request{SessionID: "s1", Message: "any discounts going on?"}, emit)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if len(final.Actions) != 1 || final.Actions[0].Type != assistantwire.ActionSpinWheel {
		t.Fatalf("expected a spin_wheel action, got %+v", final.Actions)
	}
}

func TestParseBudget(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"shoes under 1000", 1000, true},
		{"under ₹2,500 please", 2500, true},
		{"below 750", 750, true},
		{"something nice", 0, false},
		{"under the weather", 0, false},
	}
	for _, c := range cases {
		got, ok := parseBudget(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("parseBudget(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestReferencedProductIDs(t *testing.T) {
	store := catalog.NewMemoryStore(catalog.Seed())
	got := referencedProductIDs("Try P006 or P013, and P006 again. P999 does not exist.", store)
	if len(got) != 2 || got[0] != "P006" || got[1] != "P013" {
		t.Fatalf("got %v, want [P006 P013]", got)
	}
}
