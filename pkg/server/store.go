package server

import (
	"strings"
	"sync"
)

// document is one uploaded file recorded for a session.
type document struct {
	Name string
	Size int
	Text string
}

// sessionStore keeps per-session upload state in memory. Sessions live for
// the server's lifetime; there is no eviction, matching the client's
// one-session-per-page model.
type sessionStore struct {
	mu   sync.RWMutex
	docs map[string][]document
}

func newSessionStore() *sessionStore {
	return &sessionStore{docs: map[string][]document{}}
}

func (s *sessionStore) add(sessionID string, doc document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[sessionID] = append(s.docs[sessionID], doc)
}

// context returns the extracted text of every document uploaded in the
// session, capped at maxLen runes to keep prompts bounded.
func (s *sessionStore) context(sessionID string, maxLen int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var parts []string
	for _, doc := range s.docs[sessionID] {
		if doc.Text != "" {
			parts = append(parts, doc.Text)
		}
	}
	joined := strings.Join(parts, "\n\n")
	if maxLen > 0 {
		if runes := []rune(joined); len(runes) > maxLen {
			joined = string(runes[:maxLen])
		}
	}
	return joined
}

func (s *sessionStore) count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs[sessionID])
}
