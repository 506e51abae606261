package internal

import (
	"fmt"
	"strings"

	"chrono/internal/journal"
	"chrono/internal/timer"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	logKindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

const eventsPerPage = 15

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(60).Render("Chrono Master"))
	sb.WriteString("\n\n")
	sb.WriteString(boxStyle.Width(60).Render(m.clockView()))
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Start: s | Pause: p | Reset Clock: r | Reset Table: x | Events: l | Quit: q"))
	sb.WriteString("\n")

	if m.Ledger.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(boxStyle.Width(60).Render(m.lapTableView()))
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("Save Notes: w | Download Table: d | Copy CSV: y | Next/Prev note: Tab/Shift+Tab | Leave note: Esc"))
		sb.WriteString("\n")
		if m.Editing() {
			sb.WriteString(helpStyle.Render("Editing note: use ctrl+<key> for actions"))
			sb.WriteString("\n")
		}
	}

	if m.Status != "" {
		sb.WriteString("\n")
		if m.Err != nil {
			sb.WriteString(errorStyle.Render(fmt.Sprintf("%s: %v", m.Status, m.Err)))
		} else {
			sb.WriteString(statusStyle.Render(m.Status))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) clockView() string {
	readout := timer.Format(m.Timer.Elapsed())

	status := "Stopped"
	style := inactiveStyle
	clock := timerDisplayStyle.Render(readout)
	if m.Timer.Running() {
		status = "Running"
		style = runningStyle
		clock = timerRunningStyle.Render(readout)
	}

	return fmt.Sprintf("%s\n%s", clock, style.Render(status))
}

func (m *Model) lapTableView() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %-12s %s", "Number", "Time", "Note")))
	sb.WriteString("\n")

	focused, _ := m.Ledger.Focused()
	for i, r := range m.Ledger.Records() {
		marker := "  "
		line := fmt.Sprintf("%-6d %-12s ", r.Seq, r.Time)
		if r.ID == focused {
			marker = "→ "
			line = rowSelectedStyle.Render(line)
		}
		sb.WriteString(marker)
		sb.WriteString(line)
		sb.WriteString(m.notes[i].input.View())
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m *Model) allEventsView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(56).Render("Session Events"))
	sb.WriteString("\n\n")

	if len(m.Events) == 0 {
		sb.WriteString(inactiveStyle.Render("No events recorded yet."))
	} else {
		end := m.LogViewScroll + eventsPerPage
		if end > len(m.Events) {
			end = len(m.Events)
		}
		for _, e := range m.Events[m.LogViewScroll:end] {
			sb.WriteString(formatEvent(e))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Back: Esc"))
	return boxStyle.Width(60).Render(sb.String())
}

func formatEvent(e journal.Event) string {
	at := logTimeStyle.Render(e.At.Format("15:04:05"))
	kind := logKindStyle.Render(fmt.Sprintf("%-12s", e.Kind))
	line := fmt.Sprintf("  %s  %s %s", at, kind, timer.Format(e.Elapsed))
	if e.Detail != "" {
		line += "  " + e.Detail
	}
	return line
}
