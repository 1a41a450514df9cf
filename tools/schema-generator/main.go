package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/axiomcanvas/canvas-flow/cmd"
	"github.com/axiomcanvas/canvas-flow/pkg/chat"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&cmd.CanvasConfig{})
	schema.Title = "Axiom Canvas Configuration"
	schema.Description = "Schema for canvas.yml."

	// All fields optional; the binary fills in defaults for anything omitted.
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling config schema: %v", err)
	}

	if err := os.WriteFile("canvas.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing config schema file: %v", err)
	}

	log.Printf("Successfully generated config schema at canvas.schema.json")

	// The reply envelope schema, for inspecting what the server expects
	// back from the model.
	replyReflector := &jsonschema.Reflector{
		DoNotReference: true,
	}
	replySchema := replyReflector.Reflect(&chat.ExchangeResponse{})
	replySchema.Title = "Axiom Canvas Reply"
	replySchema.Description = "Envelope the assistant returns for each chat exchange."

	replyData, err := json.MarshalIndent(replySchema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling reply schema: %v", err)
	}

	if err := os.WriteFile("canvas-reply.schema.json", replyData, 0644); err != nil {
		log.Fatalf("Error writing reply schema file: %v", err)
	}

	log.Printf("Successfully generated reply schema at canvas-reply.schema.json")
}
