package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
	"github.com/axiomcanvas/canvas-flow/pkg/graph"
)

const systemPromptBase = `You are Axiom Canvas, an AI-powered mathematical visualization assistant. You help users understand mathematics through both textual explanations and visual representations on a graphing calculator.

CRITICAL: You must ALWAYS respond with valid JSON in this exact format:
{
  "chatResponse": "Your natural language response to the user",
  "graphCommands": [
    {"command": "commandName", "params": { }}
  ]
}

Available graph commands:
1. setExpression - add or update an expression
   {"command": "setExpression", "params": {"id": "parabola", "latex": "y=x^2", "color": "#2563eb"}}
   Optional params: color (hex), lineStyle ("SOLID"|"DASHED"|"DOTTED"), lineWidth, lineOpacity, pointStyle ("POINT"|"OPEN"|"CROSS"), fillOpacity, hidden.
2. removeExpression - remove an expression by ID
   {"command": "removeExpression", "params": {"id": "parabola"}}
3. setMathBounds - set the viewport bounds
   {"command": "setMathBounds", "params": {"left": -10, "right": 10, "bottom": -10, "top": 10}}
4. clearExpressions - clear all expressions from the graph
   {"command": "clearExpressions", "params": {}}
5. setBlank - reset the calculator to a blank state
   {"command": "setBlank", "params": {}}

Calculator syntax rules:
- Functions must be equations ("y=x^2", not bare "x^2").
- Points are plain coordinates: "(2, 3)", never "A=(2,3)".
- No arrow or vector notation in the latex field; LaTeX math is fine in chatResponse.
- Use descriptive IDs ("parabola_x2", "tangent_line") and remember them so you can remove specific expressions later.
- Use distinct colors for related expressions.

Always provide a clear, educational explanation in chatResponse. When asked to clear or remove a specific graph, use removeExpression with the ID you originally assigned.`

// replySchemaJSON renders a JSON schema for the reply envelope from the
// wire types themselves, so the instructions can never drift from what the
// client actually decodes.
func replySchemaJSON() (string, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
	}
	schema := r.Reflect(&chat.ExchangeResponse{})
	schema.Title = "Chat reply envelope"
	schema.Description = "Shape of every assistant reply."
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling reply schema: %w", err)
	}
	return string(data), nil
}

// buildSystemPrompt assembles the provider's system prompt: base
// instructions plus the generated reply schema.
func buildSystemPrompt() string {
	schema, err := replySchemaJSON()
	if err != nil {
		// The base prompt alone still yields usable replies.
		return systemPromptBase
	}
	return systemPromptBase + "\n\nYour reply must validate against this JSON schema:\n" + schema
}

// formatConversation renders history, graph state, document context, and
// the pending message into one structured user prompt.
func formatConversation(req chat.ExchangeRequest, docContext string) string {
	var sb strings.Builder
	sb.WriteString("<conversation>\n")

	if len(req.CurrentExpressions) > 0 {
		sb.WriteString("  <graph_state>\n")
		for _, expr := range req.CurrentExpressions {
			sb.WriteString(fmt.Sprintf("    <expression id=%q>%s</expression>\n", expr.ID, expr.Latex))
		}
		sb.WriteString("  </graph_state>\n")
	}

	if docContext != "" {
		sb.WriteString("  <document_context>\n    ")
		sb.WriteString(strings.ReplaceAll(docContext, "\n", "\n    "))
		sb.WriteString("\n  </document_context>\n")
	}

	history := req.History
	if len(history) > chat.HistoryWindow {
		history = history[len(history)-chat.HistoryWindow:]
	}
	// The client's window already contains the pending message as its
	// final turn; drop it here so it appears once, as the awaiting turn.
	if n := len(history); n > 0 && history[n-1].Role == chat.RoleUser && history[n-1].Content == req.Message {
		history = history[:n-1]
	}
	for _, turn := range history {
		role := chat.RoleUser
		if turn.Role == chat.RoleAssistant {
			role = chat.RoleAssistant
		}
		sb.WriteString(fmt.Sprintf("  <turn role=%q>\n    ", role))
		sb.WriteString(strings.ReplaceAll(strings.TrimSpace(turn.Content), "\n", "\n    "))
		sb.WriteString("\n  </turn>\n")
	}

	sb.WriteString(fmt.Sprintf("  <turn role=\"user\" status=\"awaiting_response\">\n    %s\n  </turn>\n",
		strings.ReplaceAll(strings.TrimSpace(req.Message), "\n", "\n    ")))
	sb.WriteString("</conversation>")
	return sb.String()
}

// expressionSummary is a compact one-line description of current graph
// state for logging.
func expressionSummary(exprs []graph.Expression) string {
	if len(exprs) == 0 {
		return "empty"
	}
	ids := make([]string, len(exprs))
	for i, e := range exprs {
		ids[i] = e.ID
	}
	return strings.Join(ids, ",")
}
