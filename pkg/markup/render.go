// Package markup converts untrusted chat text into safe structured markup.
//
// The assistant's replies arrive as a small markdown dialect (bold, italic,
// inline code, simple lists) possibly mixed with embedded math notation.
// Render produces markup that is safe to insert into a display container;
// math spans are located separately (see math.go) so the presentation layer
// can typeset them after insertion.
package markup

import (
	"regexp"
	"strings"
)

// escaper encodes the three HTML metacharacters. A single Replacer pass
// cannot re-encode its own output, which is what keeps escaping from ever
// running twice on the same text.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var (
	boldStarRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.+?)__`)
	italStarRe   = regexp.MustCompile(`\*([^*\n]+)\*`)
	italUnderRe  = regexp.MustCompile(`_([^_\n]+)_`)
	codeRe       = regexp.MustCompile("`([^`\n]+)`")
	numberedRe   = regexp.MustCompile(`(?m)^(\d+)\.\s+(.+)$`)
	bulletRe     = regexp.MustCompile(`(?m)^[-*]\s+(.+)$`)
)

// Render converts raw text into safe structured markup. It is total: any
// input string produces some output and the function never fails.
//
// The passes run in a fixed order. Escaping must come first and exactly
// once; list detection must come after inline emphasis (so "**1. x**" is
// not read as a list marker) and before newline conversion (so list blocks
// are not fragmented by <br> insertion).
func Render(raw string) string {
	html := escaper.Replace(raw)

	// Bold before italic: after the ** and __ runs are consumed, the
	// single-delimiter patterns cannot see inside them, which stands in
	// for the negative lookaround the dialect calls for.
	html = boldStarRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = boldUnderRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = italStarRe.ReplaceAllString(html, "<em>$1</em>")
	html = italUnderRe.ReplaceAllString(html, "<em>$1</em>")
	html = codeRe.ReplaceAllString(html, "<code>$1</code>")

	html = numberedRe.ReplaceAllString(html, `<div class="list-item numbered">$1. $2</div>`)
	html = bulletRe.ReplaceAllString(html, `<div class="list-item">`+"•"+` $1</div>`)

	return strings.ReplaceAll(html, "\n", "<br>")
}

// Escape applies only the metacharacter pass. Exposed for call sites that
// display user-authored text verbatim (never as markup).
func Escape(raw string) string {
	return escaper.Replace(raw)
}
