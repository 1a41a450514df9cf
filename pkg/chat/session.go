// Package chat implements the session-synchronized exchange protocol
// between the client and the backend: session identity, the bounded
// conversation transcript, the HTTP transport, and the per-turn
// orchestration that ties the graph surface and command interpreter
// together.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one conversation to the backend. Created once per
// client lifetime and never mutated or destroyed.
type Session struct {
	ID        string
	CreatedAt time.Time
}

// NewSession returns a session with a fresh opaque identifier.
func NewSession() *Session {
	return &Session{
		ID:        "session-" + uuid.NewString(),
		CreatedAt: time.Now(),
	}
}
