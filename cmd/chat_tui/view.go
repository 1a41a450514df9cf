package chat_tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	graphHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("114"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

func (m *Model) layout() {
	transcriptWidth := m.width - graphPaneWidth - 6
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	transcriptHeight := m.height - 6
	if m.showHelp {
		transcriptHeight -= 2
	}
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	m.viewport.Width = transcriptWidth
	m.viewport.Height = transcriptHeight
	m.input.Width = m.width - 8
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.kind {
		case entryUser:
			b.WriteString(userStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(e.content)
		case entryAssistant:
			b.WriteString(titleStyle.Render("Canvas"))
			b.WriteString("\n")
			b.WriteString(assistantStyle.Render(e.content))
		case entryError:
			b.WriteString(errorStyle.Render(e.content))
		}
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String()))
	m.viewport.GotoBottom()
}

func (m Model) graphPane() string {
	var b strings.Builder
	b.WriteString(graphHeaderStyle.Render("Graph"))
	b.WriteString("\n")

	bounds := m.surface.Bounds()
	b.WriteString(dimStyle.Render(fmt.Sprintf("x: [%g, %g]  y: [%g, %g]",
		bounds.Left, bounds.Right, bounds.Bottom, bounds.Top)))
	b.WriteString("\n\n")

	exprs := m.surface.ListExpressions()
	if len(exprs) == 0 {
		b.WriteString(dimStyle.Render("no expressions"))
	}
	for _, e := range exprs {
		swatch := "▇"
		if e.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("▇")
		}
		latex := e.Latex
		if maxLatex := graphPaneWidth - 8; len(latex) > maxLatex {
			latex = latex[:maxLatex-1] + "…"
		}
		line := fmt.Sprintf("%s %s", swatch, latex)
		if e.Hidden {
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return paneStyle.Width(graphPaneWidth).Render(b.String())
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := titleStyle.Render("Axiom Canvas") +
		dimStyle.Render("  "+m.session.ID)

	transcript := paneStyle.Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, transcript, m.graphPane())

	var footer string
	if m.busy {
		footer = m.spin.View() + dimStyle.Render(" thinking...")
	} else {
		footer = m.input.View()
	}

	sections := []string{header, body, footer}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
