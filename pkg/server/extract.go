package server

import (
	"encoding/json"
	"strings"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
)

// ExtractReply recovers the structured reply envelope from raw model
// output. Models wrap JSON in markdown fences, prepend commentary, and emit
// single-backslash LaTeX escapes; each salvage step handles one of those.
// ExtractReply is total: when nothing parses, the raw text becomes the
// chatResponse and the command list stays empty.
func ExtractReply(raw string) *chat.ExchangeResponse {
	text := strings.TrimSpace(raw)

	text = stripFences(text)

	// Narrow to the outermost brace window when the reply mixes JSON with
	// surrounding prose.
	if !strings.HasPrefix(text, "{") {
		if start := strings.Index(text, "{"); start >= 0 {
			if end := strings.LastIndex(text, "}"); end > start {
				text = text[start : end+1]
			}
		}
	}

	var reply chat.ExchangeResponse
	if err := json.Unmarshal([]byte(text), &reply); err == nil {
		return &reply
	}

	// Single backslashes in LaTeX ("y=\sin(x)") are invalid JSON escapes;
	// doubling them repairs the common case.
	repaired := strings.ReplaceAll(text, `\`, `\\`)
	if err := json.Unmarshal([]byte(repaired), &reply); err == nil {
		return &reply
	}

	return &chat.ExchangeResponse{ChatResponse: raw}
}

// stripFences removes a leading markdown code fence (```json or ```)
// around the payload, returning the inner text.
func stripFences(text string) string {
	if i := strings.Index(text, "```json"); i >= 0 {
		inner := text[i+len("```json"):]
		if j := strings.Index(inner, "```"); j >= 0 {
			return strings.TrimSpace(inner[:j])
		}
		return strings.TrimSpace(inner)
	}
	if i := strings.Index(text, "```"); i >= 0 {
		inner := text[i+3:]
		if j := strings.Index(inner, "```"); j >= 0 {
			return strings.TrimSpace(inner[:j])
		}
		return strings.TrimSpace(inner)
	}
	return text
}
