package graph

import (
	"fmt"
	"sync"
)

// DefaultBounds is the viewport a fresh surface starts with.
var DefaultBounds = Bounds{Left: -10, Right: 10, Bottom: -10, Top: 10}

// MemorySurface is an in-memory Surface. It preserves insertion order,
// validates viewport bounds, and is safe for concurrent use. The terminal
// client uses it as its graphing surface; tests use it as the widget
// stand-in.
type MemorySurface struct {
	mu     sync.Mutex
	exprs  []Expression
	bounds Bounds
	nextID int
}

// NewMemorySurface returns an empty surface with the default viewport.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{bounds: DefaultBounds}
}

// SetExpression creates or replaces by ID. An expression without an ID is
// assigned one, matching the widget's behavior of never rejecting an
// anonymous expression.
func (s *MemorySurface) SetExpression(expr Expression) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expr.ID == "" {
		s.nextID++
		expr.ID = fmt.Sprintf("expr%d", s.nextID)
	}
	for i := range s.exprs {
		if s.exprs[i].ID == expr.ID {
			s.exprs[i] = expr
			return nil
		}
	}
	s.exprs = append(s.exprs, expr)
	return nil
}

func (s *MemorySurface) RemoveExpression(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.exprs {
		if s.exprs[i].ID == id {
			s.exprs = append(s.exprs[:i], s.exprs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemorySurface) SetMathBounds(b Bounds) error {
	if err := b.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = b
	return nil
}

func (s *MemorySurface) ListExpressions() []Expression {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Expression, len(s.exprs))
	copy(out, s.exprs)
	return out
}

func (s *MemorySurface) SetBlank() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exprs = nil
	s.bounds = DefaultBounds
	return nil
}

// Bounds returns the current viewport.
func (s *MemorySurface) Bounds() Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}
