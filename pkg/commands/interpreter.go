package commands

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/axiomcanvas/canvas-flow/pkg/graph"
)

// Interpreter applies command batches to a graph surface. Commands run
// strictly in the order received; each one executes inside its own failure
// boundary so a fault in command k never prevents k+1..n from being
// attempted. There is no rollback: a partially applied batch is final.
type Interpreter struct {
	surface graph.Surface
	logger  *logrus.Entry
}

// NewInterpreter returns an interpreter bound to the given surface. A nil
// logger falls back to the standard logrus logger.
func NewInterpreter(surface graph.Surface, logger *logrus.Logger) *Interpreter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Interpreter{
		surface: surface,
		logger:  logger.WithField("component", "interpreter"),
	}
}

// Apply executes the batch best-effort and returns the number of commands
// that applied cleanly. Unknown tags and per-command faults are logged and
// skipped.
func (in *Interpreter) Apply(batch []Command) int {
	applied := 0
	for i, cmd := range batch {
		handled, err := in.applyOne(cmd)
		if err != nil {
			in.logger.WithError(err).WithFields(logrus.Fields{
				"index":   i,
				"command": cmd.Command,
			}).Error("graph command failed")
			continue
		}
		if handled {
			applied++
		}
	}
	return applied
}

// applyOne dispatches a single command. Panics out of the surface are
// converted into errors so they stay inside this command's boundary.
// handled is false only for unknown tags.
func (in *Interpreter) applyOne(cmd Command) (handled bool, err error) {
	handled = true
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic applying %q: %v", cmd.Command, r)
		}
	}()

	switch cmd.Command {
	case SetExpression:
		var expr graph.Expression
		if err := unmarshalParams(cmd.Params, &expr); err != nil {
			return true, err
		}
		return true, in.surface.SetExpression(expr)

	case RemoveExpression:
		var p struct {
			ID string `json:"id"`
		}
		if err := unmarshalParams(cmd.Params, &p); err != nil {
			return true, err
		}
		return true, in.surface.RemoveExpression(p.ID)

	case SetMathBounds:
		var b graph.Bounds
		if err := unmarshalParams(cmd.Params, &b); err != nil {
			return true, err
		}
		return true, in.surface.SetMathBounds(b)

	case ClearExpressions:
		// The surface offers no bulk-clear: read the list, then remove
		// each entry. Deliberately non-atomic.
		for _, expr := range in.surface.ListExpressions() {
			if err := in.surface.RemoveExpression(expr.ID); err != nil {
				return true, err
			}
		}
		return true, nil

	case SetBlank:
		return true, in.surface.SetBlank()

	default:
		in.logger.WithField("command", cmd.Command).Warn("unknown graph command, skipping")
		return false, nil
	}
}

func unmarshalParams(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}
