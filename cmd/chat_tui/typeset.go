package chat_tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/axiomcanvas/canvas-flow/pkg/markup"
)

var mathStyle = lipgloss.NewStyle().
	Italic(true).
	Foreground(lipgloss.Color("51"))

// termTypesetter styles math spans for the terminal. It strips the
// delimiters and renders the body in a distinct style; content with no
// recognizable spans passes through untouched.
type termTypesetter struct{}

func newTermTypesetter() markup.Typesetter { return termTypesetter{} }

func (termTypesetter) Typeset(content string) string {
	spans := markup.MathSpans(content)
	if len(spans) == 0 {
		return content
	}

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(content[last:sp.Start])
		if sp.Display {
			b.WriteString("\n")
			b.WriteString(mathStyle.Render(strings.TrimSpace(sp.Body)))
			b.WriteString("\n")
		} else {
			b.WriteString(mathStyle.Render(sp.Body))
		}
		last = sp.End
	}
	b.WriteString(content[last:])
	return b.String()
}
