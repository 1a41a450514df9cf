package chat_tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	strongRe = regexp.MustCompile(`<strong>(.*?)</strong>`)
	emRe     = regexp.MustCompile(`<em>(.*?)</em>`)
	codeRe   = regexp.MustCompile(`<code>(.*?)</code>`)

	strongStyle = lipgloss.NewStyle().Bold(true)
	emStyle     = lipgloss.NewStyle().Italic(true)
	codeStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("236"))

	entityUnescaper = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
)

// presentMarkup converts the renderer's safe markup into styled terminal
// text. Structural tags map to lipgloss styles, list wrappers collapse to
// plain lines and entities are restored last, after all tag handling.
func presentMarkup(rendered string) string {
	out := rendered

	out = strings.ReplaceAll(out, `<div class="list-item numbered">`, "")
	out = strings.ReplaceAll(out, `<div class="list-item">`, "")
	out = strings.ReplaceAll(out, "</div>", "")
	out = strings.ReplaceAll(out, "<br>", "\n")

	out = strongRe.ReplaceAllStringFunc(out, func(s string) string {
		return strongStyle.Render(strongRe.FindStringSubmatch(s)[1])
	})
	out = emRe.ReplaceAllStringFunc(out, func(s string) string {
		return emStyle.Render(emRe.FindStringSubmatch(s)[1])
	})
	out = codeRe.ReplaceAllStringFunc(out, func(s string) string {
		return codeStyle.Render(codeRe.FindStringSubmatch(s)[1])
	})

	return entityUnescaper.Replace(out)
}
