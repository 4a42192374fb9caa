// Package chat holds the transcript types persisted by the gateway.
package chat

import (
	"time"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

// Roles stored on transcript turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session captures a transient, anonymous chat/cart identity. The id is an
// opaque client-generated token; UserID is set only after login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn persists one exchange unit for audit/debug and for building the
// history window of later requests.
type Turn struct {
	ID         string                 `json:"id"`
	SessionID  string                 `json:"sessionId"`
	Role       string                 `json:"role"`
	Content    string                 `json:"content"`
	ProductIDs []string               `json:"productIds,omitempty"`
	Actions    []assistantwire.Action `json:"actions,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
