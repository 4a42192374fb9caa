package assistant

import (
	"sync"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message unit in the transcript. An assistant turn grows while
// its stream is open and becomes immutable once finalized.
type Turn struct {
	Role       Role
	Content    string
	ProductIDs []string
	Actions    []assistantwire.Action
	Streaming  bool
}

// Transcript is the ordered list of turns for one chat surface. Turns are
// appended, never removed; the history window only bounds what travels on the
// wire, not what stays visible.
type Transcript struct {
	mu       sync.Mutex
	turns    []*Turn
	onUpdate func(index int, turn Turn)
}

// NewTranscript creates an empty transcript. onUpdate, when non-nil, is called
// with a snapshot of the single turn that changed, so callers re-render that
// turn only. It may be called from multiple goroutines but never concurrently
// for the same transcript.
func NewTranscript(onUpdate func(index int, turn Turn)) *Transcript {
	return &Transcript{onUpdate: onUpdate}
}

// Begin appends a user turn and its placeholder assistant turn atomically, in
// that order, and returns a handle to the assistant turn. All subsequent
// stream events for this exchange go through the handle, so there is never a
// need to search the transcript for "the streaming turn".
func (t *Transcript) Begin(userContent string) *TurnHandle {
	t.mu.Lock()
	user := &Turn{Role: RoleUser, Content: userContent}
	asst := &Turn{Role: RoleAssistant, Streaming: true}
	t.turns = append(t.turns, user, asst)
	userIdx := len(t.turns) - 2
	asstIdx := len(t.turns) - 1
	t.mu.Unlock()

	t.notify(userIdx, *user)
	t.notify(asstIdx, snapshot(asst))
	return &TurnHandle{transcript: t, turn: asst, index: asstIdx}
}

// Append adds an already-final turn, such as the opening greeting.
func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	cp := turn
	t.turns = append(t.turns, &cp)
	idx := len(t.turns) - 1
	t.mu.Unlock()
	t.notify(idx, cp)
}

// Turns returns a snapshot of the full transcript.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	for i, turn := range t.turns {
		out[i] = snapshot(turn)
	}
	return out
}

// History returns the last window turns reduced to {role, content}, the only
// fields that travel on the wire.
func (t *Transcript) History(window int) []assistantwire.HistoryTurn {
	t.mu.Lock()
	defer t.mu.Unlock()
	start := 0
	if window > 0 && len(t.turns) > window {
		start = len(t.turns) - window
	}
	out := make([]assistantwire.HistoryTurn, 0, len(t.turns)-start)
	for _, turn := range t.turns[start:] {
		out = append(out, assistantwire.HistoryTurn{Role: string(turn.Role), Content: turn.Content})
	}
	return out
}

func (t *Transcript) notify(index int, turn Turn) {
	if t.onUpdate != nil {
		t.onUpdate(index, turn)
	}
}

func snapshot(turn *Turn) Turn {
	cp := *turn
	cp.ProductIDs = append([]string(nil), turn.ProductIDs...)
	cp.Actions = append([]assistantwire.Action(nil), turn.Actions...)
	return cp
}

// TurnHandle is the write token for one in-flight assistant turn, returned by
// Begin and threaded through every chunk/done callback.
type TurnHandle struct {
	transcript *Transcript
	turn       *Turn
	index      int
	finalized  bool
}

// AppendDelta appends streamed text to the turn. Deltas arriving after
// Finalize are dropped so a finalized turn never mutates.
func (h *TurnHandle) AppendDelta(delta string) {
	if delta == "" {
		return
	}
	h.transcript.mu.Lock()
	if h.finalized {
		h.transcript.mu.Unlock()
		return
	}
	h.turn.Content += delta
	snap := snapshot(h.turn)
	h.transcript.mu.Unlock()
	h.transcript.notify(h.index, snap)
}

// Finalize seals the turn with the terminal frame. The first call wins; later
// calls are no-ops.
func (h *TurnHandle) Finalize(f assistantwire.Final) {
	h.transcript.mu.Lock()
	if h.finalized {
		h.transcript.mu.Unlock()
		return
	}
	h.finalized = true
	h.turn.ProductIDs = append([]string(nil), f.ProductIDs...)
	h.turn.Actions = append([]assistantwire.Action(nil), f.Actions...)
	h.turn.Streaming = false
	snap := snapshot(h.turn)
	h.transcript.mu.Unlock()
	h.transcript.notify(h.index, snap)
}

// SetContent replaces the turn content wholesale, used for the transport
// fallback message. Dropped once finalized.
func (h *TurnHandle) SetContent(content string) {
	h.transcript.mu.Lock()
	if h.finalized {
		h.transcript.mu.Unlock()
		return
	}
	h.turn.Content = content
	snap := snapshot(h.turn)
	h.transcript.mu.Unlock()
	h.transcript.notify(h.index, snap)
}

// Snapshot returns a copy of the turn's current state.
func (h *TurnHandle) Snapshot() Turn {
	h.transcript.mu.Lock()
	defer h.transcript.mu.Unlock()
	return snapshot(h.turn)
}
