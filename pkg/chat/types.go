package chat

import (
	"github.com/axiomcanvas/canvas-flow/pkg/commands"
	"github.com/axiomcanvas/canvas-flow/pkg/graph"
)

// Turn roles. Only these two appear on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in the conversation transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExchangeRequest is the body of POST /api/chat, one per user turn.
type ExchangeRequest struct {
	Message            string             `json:"message"`
	SessionID          string             `json:"sessionId"`
	History            []Turn             `json:"history"`
	CurrentExpressions []graph.Expression `json:"currentExpressions"`
}

// ExchangeResponse is the backend's reply. Both fields are independent:
// either, both, or neither may be present. A reply with neither is a no-op
// turn, not an error.
type ExchangeResponse struct {
	ChatResponse  string             `json:"chatResponse,omitempty"`
	GraphCommands []commands.Command `json:"graphCommands,omitempty"`
}

// UploadResponse is the body returned by POST /api/upload_pdf.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Chunks  int    `json:"chunks,omitempty"`
	Error   string `json:"error,omitempty"`
}
