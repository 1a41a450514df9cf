package chat

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/axiomcanvas/canvas-flow/pkg/commands"
	"github.com/axiomcanvas/canvas-flow/pkg/graph"
	"github.com/axiomcanvas/canvas-flow/pkg/markup"
)

// ErrBusy is returned when Send is called while a previous exchange is
// still in flight. The busy gate is a hard invariant, not a UI nicety: at
// most one exchange runs at a time even under programmatic misuse.
var ErrBusy = errors.New("an exchange is already in flight")

// Display is the collaborator that owns the visible conversation. The
// orchestrator pushes content to it and otherwise knows nothing about how
// it is shown. ShowAssistant receives rendered markup; the display is
// expected to typeset embedded math after it has inserted the content (see
// markup.Typesetter).
type Display interface {
	// ShowUser displays a user-authored message. Implementations must
	// treat it as plain text, never as markup.
	ShowUser(text string)

	// ShowAssistant displays assistant content already rendered to safe
	// markup.
	ShowAssistant(rendered string)

	// ShowError displays a single user-visible error entry.
	ShowError(text string)

	// Focus returns input focus to the message entry point.
	Focus()
}

// Orchestrator runs one chat exchange per user turn: snapshot the graph,
// call the backend, route text to the display and commands to the
// interpreter. It exclusively owns the session and transcript.
type Orchestrator struct {
	session    *Session
	transcript *Transcript
	surface    graph.Surface
	interp     *commands.Interpreter
	exchanger  Exchanger
	display    Display
	logger     *logrus.Entry

	busy atomic.Bool
}

// NewOrchestrator wires the per-turn exchange loop. The surface is shared
// with the interpreter; the interpreter is the orchestrator's only writer
// to it.
func NewOrchestrator(session *Session, surface graph.Surface, exchanger Exchanger, display Display, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Orchestrator{
		session:    session,
		transcript: NewTranscript(),
		surface:    surface,
		interp:     commands.NewInterpreter(surface, logger),
		exchanger:  exchanger,
		display:    display,
		logger:     logger.WithField("component", "orchestrator"),
	}
}

// Session returns the orchestrator's immutable session.
func (o *Orchestrator) Session() *Session { return o.session }

// Transcript exposes the conversation history for read-only use.
func (o *Orchestrator) Transcript() *Transcript { return o.transcript }

// Busy reports whether an exchange is currently in flight.
func (o *Orchestrator) Busy() bool { return o.busy.Load() }

// Send runs one user turn. Empty or whitespace-only input is a silent
// no-op: nothing is appended, displayed, or sent. The user's message is
// appended and shown optimistically and never retracted, even when the
// exchange later fails.
func (o *Orchestrator) Send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	if !o.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	// Both exits of the busy state converge here: leave busy, restore
	// focus.
	defer func() {
		o.busy.Store(false)
		o.display.Focus()
	}()

	o.transcript.Append(Turn{Role: RoleUser, Content: message})
	o.display.ShowUser(message)

	req := ExchangeRequest{
		Message:            message,
		SessionID:          o.session.ID,
		History:            o.transcript.Window(HistoryWindow),
		CurrentExpressions: graph.Snapshot(o.surface),
	}

	resp, err := o.exchanger.Exchange(ctx, req)
	if err != nil {
		o.logger.WithError(err).Error("chat exchange failed")
		o.display.ShowError("Sorry, something went wrong. Please try again.")
		return err
	}

	// Text and commands are independent; a reply with neither is a no-op
	// turn.
	if resp.ChatResponse != "" {
		o.display.ShowAssistant(markup.Render(resp.ChatResponse))
		o.transcript.Append(Turn{Role: RoleAssistant, Content: resp.ChatResponse})
	}
	if len(resp.GraphCommands) > 0 {
		applied := o.interp.Apply(resp.GraphCommands)
		o.logger.WithFields(logrus.Fields{
			"received": len(resp.GraphCommands),
			"applied":  applied,
		}).Debug("graph commands applied")
	}
	return nil
}
