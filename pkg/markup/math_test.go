package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMathSpansInlineDollar(t *testing.T) {
	spans := MathSpans("the value of $x^2$ grows")
	require.Len(t, spans, 1)
	assert.Equal(t, "x^2", spans[0].Body)
	assert.False(t, spans[0].Display)
	assert.Equal(t, "$x^2$", "the value of $x^2$ grows"[spans[0].Start:spans[0].End])
}

func TestMathSpansDisplayDollar(t *testing.T) {
	spans := MathSpans("see $$\\frac{1}{2}$$ here")
	require.Len(t, spans, 1)
	assert.Equal(t, "\\frac{1}{2}", spans[0].Body)
	assert.True(t, spans[0].Display)
}

func TestMathSpansParenAndBracket(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		body    string
		display bool
	}{
		{name: "inline parens", input: `before \(a+b\) after`, body: "a+b", display: false},
		{name: "display brackets", input: `before \[a+b\] after`, body: "a+b", display: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := MathSpans(tt.input)
			require.Len(t, spans, 1)
			assert.Equal(t, tt.body, spans[0].Body)
			assert.Equal(t, tt.display, spans[0].Display)
		})
	}
}

func TestMathSpansUnterminated(t *testing.T) {
	// An opening delimiter with no close yields no span; the text is left
	// for the caller to show as-is.
	assert.Empty(t, MathSpans("costs $5 and rising"))
	assert.Empty(t, MathSpans(`broken \(a+b`))
}

func TestMathSpansEmptyInlineDollar(t *testing.T) {
	// "$$" at inline scan position must not produce an empty inline span.
	spans := MathSpans("$$x$$")
	require.Len(t, spans, 1)
	assert.Equal(t, "x", spans[0].Body)
	assert.True(t, spans[0].Display)
}

func TestMathSpansMultiple(t *testing.T) {
	spans := MathSpans("$a$ then $b$")
	require.Len(t, spans, 2)
	assert.Equal(t, "a", spans[0].Body)
	assert.Equal(t, "b", spans[1].Body)
}

func TestNoopTypesetter(t *testing.T) {
	ts := NoopTypesetter{}
	assert.Equal(t, "$x$", ts.Typeset("$x$"))
}

func TestMarkTypesetter(t *testing.T) {
	ts := MarkTypesetter{}
	out := ts.Typeset("inline $x$ and display $$y$$")
	assert.Contains(t, out, `<span class="math">x</span>`)
	assert.Contains(t, out, `<div class="math display">y</div>`)
	assert.NotContains(t, out, "$")
}

func TestMarkTypesetterNoMath(t *testing.T) {
	ts := MarkTypesetter{}
	assert.Equal(t, "plain words", ts.Typeset("plain words"))
}
