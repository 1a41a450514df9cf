// Package server implements the backend half of the chat protocol: the
// /api/chat and /api/upload_pdf endpoints, the reasoning-provider boundary,
// and the extraction of structured replies from raw model output.
package server

import "context"

// Provider is the opaque reasoning service. The server composes the
// conversation into a prompt pair and treats everything behind this
// interface as an external collaborator.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TextExtractor turns an uploaded document into text usable as
// conversation context. Extraction is an external capability: when no
// extractor is configured uploads are still accepted and recorded, they
// just contribute no context.
type TextExtractor interface {
	Extract(name string, data []byte) (string, error)
}
