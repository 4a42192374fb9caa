// Package assistant implements the storefront side of the assistant streaming
// protocol: the transport that opens one streamed chat response, the
// transcript that accumulates deltas per turn, the session-scoped product
// cache, and the dispatcher that maps action directives to client effects.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

// DefaultHistoryWindow bounds how many prior turns travel with each request.
const DefaultHistoryWindow = 8

// DefaultDiscountsPath is where the spin_wheel action routes.
const DefaultDiscountsPath = "/discounts"

// Shown in place of a reply when the stream cannot be opened. The turn is
// finalized with empty ids/actions; the caller decides whether to resubmit.
const fallbackMessage = "Sorry, I couldn't reach the server. Please try again in a moment."

var (
	// ErrEmptyMessage is returned when the trimmed message is empty; no
	// request is issued.
	ErrEmptyMessage = errors.New("assistant: empty message")
	// ErrStreamInFlight is returned when a submission races an open stream.
	// Callers serialize submissions, typically by disabling the input.
	ErrStreamInFlight = errors.New("assistant: stream already in flight")
)

// Config parametrizes a Client.
type Config struct {
	// Endpoint is the full URL of the chat stream endpoint.
	Endpoint string
	// SessionID may be empty for anonymous sessions.
	SessionID string
	// HistoryWindow overrides DefaultHistoryWindow when positive.
	HistoryWindow int
	// DiscountsPath overrides DefaultDiscountsPath when non-empty.
	DiscountsPath string
	// Context, when set, supplies storefront context for each request.
	Context func() *assistantwire.Context
	// OnProduct, when set, is invoked once per newly resolved product card.
	OnProduct func(ProductSummary)

	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client owns one chat surface: its transcript, its product cache, and at
// most one in-flight stream.
type Client struct {
	cfg        Config
	hc         *http.Client
	log        zerolog.Logger
	transcript *Transcript
	cache      *productCache
	fetcher    ProductFetcher
	disp       *dispatcher

	mu       sync.Mutex
	inFlight bool
}

// New builds a Client. effects receives navigation requests; fetcher resolves
// referenced product ids; onUpdate observes per-turn transcript changes.
func New(cfg Config, effects Effects, fetcher ProductFetcher, onUpdate func(index int, turn Turn)) *Client {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.DiscountsPath == "" {
		cfg.DiscountsPath = DefaultDiscountsPath
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		cfg:        cfg,
		hc:         hc,
		log:        cfg.Logger,
		transcript: NewTranscript(onUpdate),
		cache:      newProductCache(),
		fetcher:    fetcher,
	}
	c.disp = &dispatcher{
		effects:       effects,
		resubmit:      c.Submit,
		discountsPath: cfg.DiscountsPath,
		log:           cfg.Logger,
	}
	return c
}

// Transcript exposes the client's transcript.
func (c *Client) Transcript() *Transcript { return c.transcript }

// Product returns the resolved card for id, if the session has one.
func (c *Client) Product(id string) (ProductSummary, bool) { return c.cache.Get(id) }

// Invoke executes the effect bound to an action on one of the transcript's
// finalized turns: navigation, quick-order resubmission, or the discounts
// route. Unknown action types do nothing.
func (c *Client) Invoke(ctx context.Context, a assistantwire.Action) {
	c.disp.Dispatch(ctx, a)
}

// Submit sends one user message through the full pipeline: it appends the
// user turn plus a streaming assistant turn, opens the stream, applies deltas
// in receipt order, finalizes on the terminal frame, and resolves referenced
// products. It returns after the turn is finalized and resolution has
// settled. Transport failures are recovered into a fallback turn, not
// returned.
func (c *Client) Submit(ctx context.Context, message string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrStreamInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	// History is captured before the new turns exist: the current message
	// travels in the message field, not in history.
	history := c.transcript.History(c.cfg.HistoryWindow)
	handle := c.transcript.Begin(msg)

	final, ok := c.stream(ctx, handle, msg, history)
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
	if !ok {
		// Cancelled mid-stream: no state is written after this point.
		return nil
	}

	handle.Finalize(final)
	c.resolveProducts(ctx, final.ProductIDs)
	return nil
}

// stream opens the HTTP stream and pumps it through the frame decoder. The
// returned bool is false only when the caller's context was cancelled, in
// which case the turn must not be finalized.
func (c *Client) stream(ctx context.Context, handle *TurnHandle, msg string, history []assistantwire.HistoryTurn) (assistantwire.Final, bool) {
	var reqCtx *assistantwire.Context
	if c.cfg.Context != nil {
		reqCtx = c.cfg.Context()
	}
	body, err := json.Marshal(assistantwire.Request{
		SessionID: c.cfg.SessionID,
		Message:   msg,
		History:   history,
		Context:   reqCtx,
	})
	if err != nil {
		c.log.Error().Err(err).Msg("marshal chat request")
		handle.SetContent(fallbackMessage)
		return assistantwire.Final{ProductIDs: []string{}, Actions: []assistantwire.Action{}}, true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		handle.SetContent(fallbackMessage)
		return assistantwire.Final{ProductIDs: []string{}, Actions: []assistantwire.Action{}}, true
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return assistantwire.Final{}, false
		}
		c.log.Warn().Err(err).Msg("chat stream request failed")
		handle.SetContent(fallbackMessage)
		return assistantwire.Final{ProductIDs: []string{}, Actions: []assistantwire.Action{}}, true
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("chat stream rejected")
		handle.SetContent(fallbackMessage)
		return assistantwire.Final{ProductIDs: []string{}, Actions: []assistantwire.Action{}}, true
	}

	dec := assistantwire.NewDecoder(handle.AppendDelta)
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if ctx.Err() != nil {
				return assistantwire.Final{}, false
			}
			dec.Feed(buf[:n])
		}
		if err != nil {
			if ctx.Err() != nil {
				return assistantwire.Final{}, false
			}
			// EOF, clean or not: whatever arrived is the whole stream. A
			// missing terminal frame degrades to empty ids/actions.
			return dec.Close(), true
		}
	}
}
