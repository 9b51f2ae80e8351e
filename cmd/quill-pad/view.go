package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/pkg/notebook"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.fatalErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true)
		hint := lipgloss.NewStyle().Foreground(m.theme.Muted)
		return fmt.Sprintf("\n  %s\n\n  %v\n\n  %s\n",
			errStyle.Render("interpreter unavailable"),
			m.fatalErr,
			hint.Render("R restart · q quit"))
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.mode == EditMode {
		b.WriteString(m.editor.View())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  esc save & close"))
	} else {
		b.WriteString(m.cellListView())
		b.WriteString("\n")
		b.WriteString(m.helpView())
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

// headerView renders the title bar: file name, session state, cell count.
func (m Model) headerView() string {
	title := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
	stateStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary)

	state := string(m.nb.State())
	if m.nb.State() == notebook.StateRunning || m.nb.State() == notebook.StateInterrupting {
		state = m.spin.View() + " " + state
		if id := m.nb.ActiveCell(); id != notebook.NoCell {
			state += fmt.Sprintf(" (cell %d)", id)
		}
	}

	return fmt.Sprintf("  %s  %s  %s",
		title.Render("quill pad"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.path),
		stateStyle.Render(state))
}

// cellListView renders every active cell with its visible outputs.
func (m Model) cellListView() string {
	cells := m.cells()
	if len(cells) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  no cells — press a to add one")
	}

	kindStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary)
	codeStyle := lipgloss.NewStyle().Foreground(m.theme.Primary)
	stdoutStyle := lipgloss.NewStyle().Foreground(m.theme.Success)
	stderrStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var b strings.Builder
	for i, cell := range cells {
		marker := "  "
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(m.theme.Warning).Render("> ")
		}

		ran := " "
		if cell.HasRun {
			ran = "*"
		}
		b.WriteString(fmt.Sprintf("%s[%d]%s %s\n",
			marker, cell.ID, ran, kindStyle.Render(string(cell.Kind))))

		for _, line := range strings.Split(strings.TrimRight(cell.Code, "\n"), "\n") {
			b.WriteString("      " + codeStyle.Render(line) + "\n")
		}

		for ev := range m.nb.Outputs(cell.ID) {
			style := stdoutStyle
			if ev.Stream == notebook.StreamStderr {
				style = stderrStyle
			}
			for _, line := range strings.Split(strings.TrimRight(ev.Text, "\n"), "\n") {
				b.WriteString("      " + muted.Render("│ ") + style.Render(line) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// helpView renders the key legend.
func (m Model) helpView() string {
	help := "j/k move · enter edit · r run · i interrupt · a/t/T add · d delete · c clear · s save · R restart · q quit"
	if m.fileChanged {
		help += " · g reload"
	}
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  " + help)
}

// statusView renders the one-line status bar.
func (m Model) statusView() string {
	return lipgloss.NewStyle().Foreground(m.theme.Warning).Render("  " + m.status)
}
