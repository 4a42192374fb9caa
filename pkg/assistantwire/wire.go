// Package assistantwire defines the wire format for the assistant streaming
// protocol. A response body is a sequence of raw UTF-8 text deltas followed by
// a sentinel marker and exactly one JSON trailer carrying the referenced
// product ids and action directives. The package is shared by the gateway
// handler (Encoder) and the storefront client (Decoder).
package assistantwire

import (
	"bytes"
	"encoding/json"
	"io"
)

// Sentinel separates the delta text from the JSON trailer. It never appears
// inside assistant text.
const Sentinel = "\n<<FINAL>>\n"

// Known action discriminants. The set is open on the wire: clients must treat
// unrecognized types as no-ops, not errors.
const (
	ActionNavigate          = "navigate"
	ActionQuickOrderOption  = "quick_order_option"
	ActionQuickOrderConfirm = "quick_order_confirm"
	ActionQuickOrderChange  = "quick_order_change"
	ActionSpinWheel         = "spin_wheel"
)

// Canonical user messages the client resubmits when a quick-order action is
// invoked. The server recognizes them verbatim.
const (
	ConfirmOrderMessage = "Confirm and place order"
	ChangeOrderMessage  = "Change details"
)

// Action is a directive from the assistant to the storefront client.
type Action struct {
	Type    string `json:"type"`
	Label   string `json:"label"`
	Payload string `json:"payload,omitempty"`
}

// Final is the terminal frame of a stream.
type Final struct {
	ProductIDs []string `json:"product_ids"`
	Actions    []Action `json:"actions"`
}

// HistoryTurn is one prior exchange reduced to what travels on the wire.
// Actions and product ids are client-local and are stripped before sending.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context carries storefront state that personalizes the reply.
type Context struct {
	CurrentPage string  `json:"current_page"`
	UserID      *string `json:"user_id"`
	CartCount   int     `json:"cart_count"`
}

// Request is the body of POST /api/chat/stream.
type Request struct {
	SessionID string        `json:"session_id"`
	Message   string        `json:"message"`
	History   []HistoryTurn `json:"history"`
	Context   *Context      `json:"context,omitempty"`
}

// EncodeFinal renders the terminal frame, sentinel included.
func EncodeFinal(f Final) ([]byte, error) {
	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	if f.Actions == nil {
		f.Actions = []Action{}
	}
	trailer, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(Sentinel)+len(trailer))
	out = append(out, Sentinel...)
	out = append(out, trailer...)
	return out, nil
}

// Encoder writes a stream in wire order: deltas first, one final frame last.
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w. Callers flush between writes when w buffers.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteDelta emits one text delta verbatim.
func (e *Encoder) WriteDelta(text string) error {
	if text == "" {
		return nil
	}
	_, err := io.WriteString(e.w, text)
	return err
}

// WriteFinal emits the sentinel and the JSON trailer. No deltas may follow.
func (e *Encoder) WriteFinal(f Final) error {
	out, err := EncodeFinal(f)
	if err != nil {
		return err
	}
	_, err = e.w.Write(out)
	return err
}

// Decoder incrementally splits a streamed body into deltas and the final
// frame. Chunk boundaries are arbitrary: a sentinel split across chunks is
// reassembled by holding back any trailing bytes that form a sentinel prefix.
type Decoder struct {
	onDelta func(string)

	pending  []byte
	trailer  bytes.Buffer
	sawFinal bool
	closed   bool
}

// NewDecoder returns a decoder that invokes onDelta for each text delta in
// receipt order. onDelta may be nil.
func NewDecoder(onDelta func(string)) *Decoder {
	return &Decoder{onDelta: onDelta}
}

// Feed consumes the next chunk of the response body.
func (d *Decoder) Feed(chunk []byte) {
	if d.closed || len(chunk) == 0 {
		return
	}
	if d.sawFinal {
		d.trailer.Write(chunk)
		return
	}

	d.pending = append(d.pending, chunk...)
	if i := bytes.Index(d.pending, []byte(Sentinel)); i >= 0 {
		d.emit(d.pending[:i])
		d.trailer.Write(d.pending[i+len(Sentinel):])
		d.pending = nil
		d.sawFinal = true
		return
	}

	// Hold back a trailing partial sentinel so it is not surfaced as text.
	hold := sentinelPrefixLen(d.pending)
	d.emit(d.pending[:len(d.pending)-hold])
	d.pending = d.pending[len(d.pending)-hold:]
}

// Close finishes the stream and returns the final frame. A missing or
// malformed trailer degrades to an empty frame so partial text survives.
func (d *Decoder) Close() Final {
	if d.closed {
		return Final{ProductIDs: []string{}, Actions: []Action{}}
	}
	d.closed = true

	if !d.sawFinal {
		// Truncated stream: the held-back bytes were ordinary text after all.
		d.emit(d.pending)
		d.pending = nil
		return Final{ProductIDs: []string{}, Actions: []Action{}}
	}

	var f Final
	if err := json.Unmarshal(d.trailer.Bytes(), &f); err != nil {
		return Final{ProductIDs: []string{}, Actions: []Action{}}
	}
	if f.ProductIDs == nil {
		f.ProductIDs = []string{}
	}
	if f.Actions == nil {
		f.Actions = []Action{}
	}
	return f
}

func (d *Decoder) emit(text []byte) {
	if len(text) == 0 || d.onDelta == nil {
		return
	}
	d.onDelta(string(text))
}

// sentinelPrefixLen reports the length of the longest proper sentinel prefix
// that ends buf.
func sentinelPrefixLen(buf []byte) int {
	max := len(Sentinel) - 1
	if len(buf) < max {
		max = len(buf)
	}
	for k := max; k > 0; k-- {
		if bytes.HasSuffix(buf, []byte(Sentinel[:k])) {
			return k
		}
	}
	return 0
}
