package markup

import "strings"

// Span is one well-formed run of delimited math inside a rendered string.
// Start and End index the full delimited run (delimiters included); Body is
// the notation between the delimiters.
type Span struct {
	Start   int
	End     int
	Body    string
	Display bool // block math ($$…$$ or \[…\]) vs inline ($…$ or \(…\))
}

// Typesetter renders embedded math notation inside content that has already
// been inserted into its display container. Implementations must be
// fail-soft: malformed math is left as raw delimited text, never an error.
type Typesetter interface {
	Typeset(content string) string
}

// NoopTypesetter leaves content untouched. Useful as a default and in tests.
type NoopTypesetter struct{}

func (NoopTypesetter) Typeset(content string) string { return content }

type delimiter struct {
	left    string
	right   string
	display bool
}

// Ordered so that $$ is tried before $; a $$ run must never be read as an
// empty $…$ pair.
var delimiters = []delimiter{
	{left: "$$", right: "$$", display: true},
	{left: `\[`, right: `\]`, display: true},
	{left: `\(`, right: `\)`, display: false},
	{left: "$", right: "$", display: false},
}

// MathSpans locates every well-formed delimited math span in s, in document
// order. Unterminated delimiters produce no span: the raw text stays
// visible, which is the fail-soft contract shared with the typesetters.
func MathSpans(s string) []Span {
	var spans []Span
	i := 0
	for i < len(s) {
		matched := false
		for _, d := range delimiters {
			if !strings.HasPrefix(s[i:], d.left) {
				continue
			}
			bodyStart := i + len(d.left)
			rel := strings.Index(s[bodyStart:], d.right)
			if rel < 0 {
				// Opening delimiter with no close: leave it raw and
				// keep scanning after it.
				continue
			}
			if rel == 0 && d.left == "$" {
				// "$$" reaching the inline arm means an unpaired block
				// delimiter; skip it rather than emit an empty span.
				continue
			}
			body := s[bodyStart : bodyStart+rel]
			spans = append(spans, Span{
				Start:   i,
				End:     bodyStart + rel + len(d.right),
				Body:    body,
				Display: d.display,
			})
			i = bodyStart + rel + len(d.right)
			matched = true
			break
		}
		if !matched {
			i++
		}
	}
	return spans
}

// MarkTypesetter wraps each well-formed math span in a marker element so a
// downstream renderer (the web front-end's math library) can find and
// typeset it after the content is mounted. Malformed spans are untouched.
type MarkTypesetter struct{}

func (MarkTypesetter) Typeset(content string) string {
	spans := MathSpans(content)
	if len(spans) == 0 {
		return content
	}
	var sb strings.Builder
	last := 0
	for _, sp := range spans {
		sb.WriteString(content[last:sp.Start])
		if sp.Display {
			sb.WriteString(`<div class="math display">`)
			sb.WriteString(sp.Body)
			sb.WriteString(`</div>`)
		} else {
			sb.WriteString(`<span class="math">`)
			sb.WriteString(sp.Body)
			sb.WriteString(`</span>`)
		}
		last = sp.End
	}
	sb.WriteString(content[last:])
	return sb.String()
}
