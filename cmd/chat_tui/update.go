package chat_tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/axiomcanvas/canvas-flow/pkg/chat"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			if m.busy {
				return m, nil
			}
			text := m.input.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.input.Blur()
			m.busy = true
			return m, tea.Batch(sendCmd(m.orch, text), m.spin.Tick)
		}

	case showUserMsg:
		m.entries = append(m.entries, entry{kind: entryUser, content: msg.text})
		m.refreshTranscript()
		return m, nil

	case showAssistantMsg:
		idx := len(m.entries)
		m.entries = append(m.entries, entry{kind: entryAssistant, content: presentMarkup(msg.rendered)})
		m.refreshTranscript()
		return m, typesetCmd(m.typesetter, idx, m.entries[idx].content)

	case typesetDoneMsg:
		if msg.index >= 0 && msg.index < len(m.entries) {
			m.entries[msg.index].content = msg.content
			m.refreshTranscript()
		}
		return m, nil

	case showErrorMsg:
		m.entries = append(m.entries, entry{kind: entryError, content: msg.text})
		m.refreshTranscript()
		return m, nil

	case focusMsg:
		m.busy = false
		m.input.Focus()
		return m, textinput.Blink

	case sendDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, chat.ErrBusy) {
			m.logger.WithError(msg.err).Debug("chat exchange failed")
		}
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
