package assistant

import "sync"

// OpenRequest asks the chat surface to open, optionally auto-submitting a
// first message.
type OpenRequest struct {
	InitialMessage string
}

// Trigger is the integration seam between the storefront and the chat
// surface. Any module may publish; the chat surface is the single subscriber.
// It replaces an ambient broadcast event with an explicit, typed subscription
// owned by the root application object.
type Trigger struct {
	mu        sync.Mutex
	handler   func(OpenRequest)
	handlerID uint64
	seq       uint64
}

// NewTrigger returns an empty trigger.
func NewTrigger() *Trigger { return &Trigger{} }

// Subscribe installs the chat-surface handler, replacing any previous one.
// The returned function removes the subscription unless a newer subscriber
// has taken over.
func (t *Trigger) Subscribe(fn func(OpenRequest)) (cancel func()) {
	t.mu.Lock()
	t.seq++
	id := t.seq
	t.handler = fn
	t.handlerID = id
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		if t.handlerID == id {
			t.handler = nil
		}
		t.mu.Unlock()
	}
}

// Publish delivers the request to the subscriber, if any. Publishing with no
// subscriber is a silent no-op.
func (t *Trigger) Publish(req OpenRequest) {
	t.mu.Lock()
	fn := t.handler
	t.mu.Unlock()
	if fn != nil {
		fn(req)
	}
}
