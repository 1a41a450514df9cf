package chat

import "sync"

// HistoryWindow bounds the history sent with any request. The backend never
// receives more turns than this, regardless of transcript length.
const HistoryWindow = 10

// Transcript is the ordered conversation history for a session. It is
// append-only from the client's perspective and safe for concurrent use.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a turn in chronological order.
func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Window returns a copy of the most recent n turns (fewer when the
// transcript is shorter).
func (t *Transcript) Window(n int) []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := len(t.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]Turn, len(t.turns)-start)
	copy(out, t.turns[start:])
	return out
}

// All returns a copy of the full transcript.
func (t *Transcript) All() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len reports the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
