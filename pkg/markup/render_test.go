package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEscapesHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "angle brackets",
			input:    "<script>alert(1)</script>",
			expected: "&lt;script&gt;alert(1)&lt;/script&gt;",
		},
		{
			name:     "ampersand escaped once",
			input:    "a & b",
			expected: "a &amp; b",
		},
		{
			name:     "pre-escaped entity not double escaped into markup",
			input:    "x < y && y > z",
			expected: "x &lt; y &amp;&amp; y &gt; z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.input))
		})
	}
}

func TestRenderInlineFormatting(t *testing.T) {
	out := Render("**a** *b* `c`")
	assert.Equal(t, "<strong>a</strong> <em>b</em> <code>c</code>", out)
}

func TestRenderBoldBeforeItalic(t *testing.T) {
	// Double asterisks must become strong, not two adjacent emphasis runs.
	out := Render("**bold** and *ital*")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>ital</em>")
	assert.NotContains(t, out, "<em></em>")
}

func TestRenderUnderscoreVariants(t *testing.T) {
	out := Render("__bold__ and _ital_")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>ital</em>")
}

func TestRenderNumberedList(t *testing.T) {
	out := Render("1. foo\n2. bar")
	assert.Equal(t,
		`<div class="list-item numbered">1. foo</div><br><div class="list-item numbered">2. bar</div>`,
		out)
}

func TestRenderBulletList(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "dash bullets", input: "- one\n- two"},
		{name: "star bullets", input: "* one\n* two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.input)
			assert.Contains(t, out, `<div class="list-item">• one</div>`)
			assert.Contains(t, out, `<div class="list-item">• two</div>`)
		})
	}
}

func TestRenderNewlines(t *testing.T) {
	assert.Equal(t, "a<br>b", Render("a\nb"))
}

func TestRenderPlainTextPassesThrough(t *testing.T) {
	assert.Equal(t, "hello world", Render("hello world"))
	assert.Equal(t, "", Render(""))
}

func TestRenderMalformedMarkup(t *testing.T) {
	// Unbalanced markers should never panic and should leave text readable.
	inputs := []string{
		"**unclosed bold",
		"`unclosed code",
		"2x**2 + 3x**4",
		"***",
	}
	for _, in := range inputs {
		out := Render(in)
		assert.NotEmpty(t, out)
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;", Escape("&<>"))
}
