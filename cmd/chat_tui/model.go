package chat_tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
	"github.com/axiomcanvas/canvas-flow/pkg/graph"
	"github.com/axiomcanvas/canvas-flow/pkg/markup"
)

const graphPaneWidth = 34

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryError
)

type entry struct {
	kind    entryKind
	content string
}

type Model struct {
	session *chat.Session
	orch    *chat.Orchestrator
	surface *graph.MemorySurface
	logger  *logrus.Logger

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap

	typesetter markup.Typesetter
	entries    []entry

	busy     bool
	showHelp bool
	ready    bool
	width    int
	height   int
}

func NewModel(session *chat.Session, client *chat.Client, display chat.Display, logger *logrus.Logger) Model {
	surface := graph.NewMemorySurface()
	orch := chat.NewOrchestrator(session, surface, client, display, logger)

	input := textinput.New()
	input.Placeholder = "Ask about the graph..."
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return Model{
		session:    session,
		orch:       orch,
		surface:    surface,
		logger:     logger,
		input:      input,
		spin:       spin,
		help:       help.New(),
		keys:       NewKeyMap(),
		typesetter: newTermTypesetter(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the chat TUI against the given backend client and blocks
// until the user quits.
func Run(session *chat.Session, client *chat.Client, logger *logrus.Logger) error {
	// Pin the color profile so styling survives non-truecolor terminals.
	lipgloss.SetColorProfile(termenv.ColorProfile())

	display := &programDisplay{}
	m := NewModel(session, client, display, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())
	display.program = p

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui failed: %w", err)
	}
	return nil
}
