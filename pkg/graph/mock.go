package graph

import (
	"fmt"
	"strings"
)

// MockSurface is a Surface for tests. It records every call that would hit
// the widget and delegates to an embedded MemorySurface unless a custom
// func is installed, which gives tests a hook for failure injection.
type MockSurface struct {
	*MemorySurface

	// Calls records the operations in invocation order, e.g.
	// "setExpression parabola" or "removeExpression a".
	Calls []string

	// SetExpressionFunc, when set, replaces the default behavior.
	SetExpressionFunc func(expr Expression) error

	// RemoveExpressionFunc, when set, replaces the default behavior.
	RemoveExpressionFunc func(id string) error

	// SetMathBoundsFunc, when set, replaces the default behavior.
	SetMathBoundsFunc func(b Bounds) error

	// SetBlankFunc, when set, replaces the default behavior.
	SetBlankFunc func() error
}

// NewMockSurface returns a recording surface backed by fresh memory state.
func NewMockSurface() *MockSurface {
	return &MockSurface{MemorySurface: NewMemorySurface()}
}

func (m *MockSurface) record(parts ...string) {
	m.Calls = append(m.Calls, strings.Join(parts, " "))
}

func (m *MockSurface) SetExpression(expr Expression) error {
	m.record("setExpression", expr.ID)
	if m.SetExpressionFunc != nil {
		return m.SetExpressionFunc(expr)
	}
	return m.MemorySurface.SetExpression(expr)
}

func (m *MockSurface) RemoveExpression(id string) error {
	m.record("removeExpression", id)
	if m.RemoveExpressionFunc != nil {
		return m.RemoveExpressionFunc(id)
	}
	return m.MemorySurface.RemoveExpression(id)
}

func (m *MockSurface) SetMathBounds(b Bounds) error {
	m.record("setMathBounds", fmt.Sprintf("[%v,%v]x[%v,%v]", b.Left, b.Right, b.Bottom, b.Top))
	if m.SetMathBoundsFunc != nil {
		return m.SetMathBoundsFunc(b)
	}
	return m.MemorySurface.SetMathBounds(b)
}

func (m *MockSurface) SetBlank() error {
	m.record("setBlank")
	if m.SetBlankFunc != nil {
		return m.SetBlankFunc()
	}
	return m.MemorySurface.SetBlank()
}
