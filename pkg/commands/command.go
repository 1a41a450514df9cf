// Package commands interprets server-issued graph command batches.
//
// The backend replies with an ordered list of instructions that mutate the
// graph surface. The instruction set is open-ended: new command tags may
// appear without a client update, so Command is a tagged variant with an
// explicit unknown arm rather than a closed enum.
package commands

import "encoding/json"

// Known command tags. The interpreter also accepts tags outside this set;
// they are logged and skipped.
const (
	SetExpression    = "setExpression"
	RemoveExpression = "removeExpression"
	SetMathBounds    = "setMathBounds"
	ClearExpressions = "clearExpressions"
	SetBlank         = "setBlank"
)

// Command is one server-issued instruction. Params stays raw until the
// interpreter knows which payload shape the tag calls for.
type Command struct {
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params,omitempty"`
}
