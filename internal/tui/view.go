package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/timetabled/timetabled/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case constants.StateCalendar:
		body = m.viewCalendar()
	case constants.StateEditor:
		body = m.viewEditor()
	case constants.StateMap:
		body = m.viewMap()
	case constants.StateConfirmDelete:
		body = m.viewConfirmDelete()
	}

	footer := m.help.View(m)
	if m.statusMsg != "" {
		footer = errorStyle.Render(m.statusMsg) + "\n" + footer
	}

	return docStyle.Render(body + "\n\n" + footer)
}

func (m Model) viewCalendar() string {
	left := m.grid.View()

	right := subtitleStyle.Render(m.grid.SelectedDate()) + "\n" + m.dayList.View()

	return titleStyle.Render("Timetabled") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

func (m Model) viewEditor() string {
	heading := "New event"
	if m.editor.editing() {
		heading = "Edit event"
	}

	var out string
	out += titleStyle.Render(heading) + subtitleStyle.Render(m.editor.date) + "\n\n"
	out += fmt.Sprintf("%s Time        %s : %s\n\n",
		focusMarker(m.editor.focus == fieldHour || m.editor.focus == fieldMinute),
		m.editor.hour.View(), m.editor.minute.View())
	out += fmt.Sprintf("%s Destination %s\n\n",
		focusMarker(m.editor.focus == fieldDestination), m.editor.dest.View())
	out += fmt.Sprintf("%s Text        %s\n",
		focusMarker(m.editor.focus == fieldText), m.editor.text.View())

	if m.editor.formError != "" {
		out += "\n" + errorStyle.Render(m.editor.formError) + "\n"
	}

	hints := "tab next field · enter save on last field · ctrl+s save · esc cancel"
	if m.editor.destCoords != nil {
		hints += " · ctrl+g route"
	}
	out += "\n" + subtitleStyle.Render(hints)

	return out
}

func focusMarker(focused bool) string {
	if focused {
		return "▸"
	}
	return " "
}

func (m Model) viewMap() string {
	return titleStyle.Render("Route") + "\n\n" + m.routeView.View() + "\n\n" +
		subtitleStyle.Render("esc back to event")
}

func (m Model) viewConfirmDelete() string {
	var label string
	if m.eventToDelete != nil {
		label = fmt.Sprintf("%s  %s", m.eventToDelete.Time, m.eventToDelete.Text)
	}
	return titleStyle.Render("Delete event") + "\n\n" +
		label + "\n\n" +
		dangerStyle.Render("Delete this event? (y/n)")
}
