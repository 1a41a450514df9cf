package chat_tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
	"github.com/axiomcanvas/canvas-flow/pkg/markup"
)

// Messages delivered into the bubbletea loop. The orchestrator runs in a
// command goroutine and talks back through program.Send, so every display
// update arrives here as a typed message.

type showUserMsg struct {
	text string
}

type showAssistantMsg struct {
	rendered string
}

type showErrorMsg struct {
	text string
}

type focusMsg struct{}

type sendDoneMsg struct {
	err error
}

type typesetDoneMsg struct {
	index   int
	content string
}

// programDisplay bridges chat.Display onto a running tea.Program. The
// program pointer is set by Run after the program is constructed.
type programDisplay struct {
	program *tea.Program
}

func (d *programDisplay) ShowUser(text string) {
	if d.program != nil {
		d.program.Send(showUserMsg{text: text})
	}
}

func (d *programDisplay) ShowAssistant(rendered string) {
	if d.program != nil {
		d.program.Send(showAssistantMsg{rendered: rendered})
	}
}

func (d *programDisplay) ShowError(text string) {
	if d.program != nil {
		d.program.Send(showErrorMsg{text: text})
	}
}

func (d *programDisplay) Focus() {
	if d.program != nil {
		d.program.Send(focusMsg{})
	}
}

func sendCmd(orch *chat.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		err := orch.Send(context.Background(), text)
		return sendDoneMsg{err: err}
	}
}

// typesetCmd styles math spans on the next scheduling tick, after the
// entry is already on screen.
func typesetCmd(ts markup.Typesetter, index int, content string) tea.Cmd {
	return func() tea.Msg {
		return typesetDoneMsg{index: index, content: ts.Typeset(content)}
	}
}
