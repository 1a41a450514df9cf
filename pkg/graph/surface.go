// Package graph defines the capability boundary around the graphing surface.
//
// The surface itself is external state (a rendering widget, or the in-memory
// stand-in in this package). Everything above it depends only on the Surface
// interface, so tests and the terminal client substitute their own
// implementations without touching the protocol core.
package graph

import "fmt"

// Expression is one plotted entry on the surface. ID is unique within a
// surface; the styling fields are passed through to the widget untouched.
type Expression struct {
	ID          string  `json:"id"`
	Latex       string  `json:"latex"`
	Color       string  `json:"color,omitempty"`
	LineStyle   string  `json:"lineStyle,omitempty"`
	LineWidth   float64 `json:"lineWidth,omitempty"`
	LineOpacity float64 `json:"lineOpacity,omitempty"`
	PointStyle  string  `json:"pointStyle,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	Hidden      bool    `json:"hidden,omitempty"`
}

// Bounds is the visible viewport. Valid bounds satisfy Left < Right and
// Bottom < Top; the surface enforces this, not its callers.
type Bounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

func (b Bounds) validate() error {
	if b.Left >= b.Right {
		return fmt.Errorf("invalid bounds: left (%v) must be less than right (%v)", b.Left, b.Right)
	}
	if b.Bottom >= b.Top {
		return fmt.Errorf("invalid bounds: bottom (%v) must be less than top (%v)", b.Bottom, b.Top)
	}
	return nil
}

// Surface is the full capability set the core consumes from the graphing
// widget. There is deliberately no bulk-clear: clearing is expressed as
// ListExpressions followed by one RemoveExpression per entry.
type Surface interface {
	// SetExpression creates or replaces the expression keyed by its ID.
	SetExpression(expr Expression) error

	// RemoveExpression removes the expression with the given ID. Removing
	// an unknown ID is a no-op, not an error.
	RemoveExpression(id string) error

	// SetMathBounds replaces the viewport. Malformed bounds are rejected
	// here.
	SetMathBounds(b Bounds) error

	// ListExpressions returns the current expressions in plot order.
	ListExpressions() []Expression

	// SetBlank resets the surface to an empty authoring state.
	SetBlank() error
}

// Snapshot reads the surface and returns a value copy of the plotted
// expressions that carry a formula, projected to the fields the backend
// needs. The result never aliases live surface state.
func Snapshot(s Surface) []Expression {
	var out []Expression
	for _, expr := range s.ListExpressions() {
		if expr.Latex == "" {
			continue
		}
		out = append(out, Expression{
			ID:    expr.ID,
			Latex: expr.Latex,
			Color: expr.Color,
		})
	}
	return out
}
