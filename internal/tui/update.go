package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetabled/timetabled/internal/constants"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dayList.SetSize(msg.Width/2, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		// A status banner shows until the next key press
		m.statusMsg = ""

	default:
		// Async answers (geolocation, route fetches, suggestion results,
		// spinner ticks) settle in their components no matter which view
		// is active, so a fetch that finishes after the user backed out
		// of the map does not leave the presenter claiming pending work
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.routeView, cmd = m.routeView.Update(msg)
		cmds = append(cmds, cmd)
		m.editor, cmd = m.editor.update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.state {
	case constants.StateCalendar:
		return m.updateCalendar(msg)
	case constants.StateEditor:
		return m.updateEditor(msg)
	case constants.StateMap:
		return m.updateMap(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	moved := false
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Left):
		m.grid.MoveCursor(-1)
		moved = true
	case key.Matches(keyMsg, m.keys.Right):
		m.grid.MoveCursor(1)
		moved = true
	case key.Matches(keyMsg, m.keys.Up):
		m.grid.MoveCursor(-7)
		moved = true
	case key.Matches(keyMsg, m.keys.Down):
		m.grid.MoveCursor(7)
		moved = true
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.grid.PrevMonth()
		moved = true
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.grid.NextMonth()
		moved = true
	case key.Matches(keyMsg, m.keys.Today):
		m.grid.GoToday()
		moved = true

	case key.Matches(keyMsg, m.keys.NextEvent), key.Matches(keyMsg, m.keys.PrevEvent):
		var cmd tea.Cmd
		m.dayList, cmd = m.dayList.Update(remapEventKey(keyMsg))
		return m, cmd

	case key.Matches(keyMsg, m.keys.Add):
		m.state = constants.StateEditor
		return m, m.editor.reset(m.grid.SelectedDate())

	case key.Matches(keyMsg, m.keys.Edit):
		if ev, ok := m.dayList.Selected(); ok {
			m.state = constants.StateEditor
			return m, m.editor.prefill(m.grid.SelectedDate(), ev)
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if ev, ok := m.dayList.Selected(); ok {
			e := ev
			m.eventToDelete = &e
			m.state = constants.StateConfirmDelete
		}
	}

	if moved {
		events, err := m.store.ListEvents(m.grid.SelectedDate())
		if err == nil {
			m.dayList.SetEvents(events)
		}
	}
	return m, nil
}

// remapEventKey translates the shifted event-selection keys into the list's
// own up/down bindings.
func remapEventKey(msg tea.KeyMsg) tea.KeyMsg {
	switch msg.String() {
	case "J":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "K":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return msg
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// An open suggestions dropdown owns enter, esc and the arrow keys
		dropdownOpen := m.editor.focus == fieldDestination && m.editor.dest.HasSuggestions()

		switch {
		case keyMsg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case keyMsg.Type == tea.KeyEsc && !dropdownOpen:
			// Cancel: draft is discarded, nothing is stored
			m.state = constants.StateCalendar
			return m, nil

		case keyMsg.Type == tea.KeyTab:
			return m, m.editor.nextField()

		case keyMsg.Type == tea.KeyShiftTab:
			return m, m.editor.prevField()

		case keyMsg.Type == tea.KeyEnter && !dropdownOpen:
			if m.editor.focus == fieldText {
				return m.saveDraft()
			}
			return m, m.editor.nextField()

		case keyMsg.String() == "ctrl+s":
			return m.saveDraft()

		case keyMsg.String() == "ctrl+g":
			// Map view is only reachable once the draft has coordinates
			if m.editor.destCoords != nil {
				m.state = constants.StateMap
				return m, m.routeView.SetDestination(*m.editor.destCoords, m.editor.destName)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

func (m Model) saveDraft() (tea.Model, tea.Cmd) {
	draft, ok := m.editor.draft()
	if !ok {
		return m, nil
	}

	var err error
	if m.editor.editing() {
		_, err = m.store.UpdateEvent(m.editor.date, m.editor.editingID, draft)
	} else {
		_, err = m.store.CreateEvent(m.editor.date, draft)
	}
	if err != nil {
		m.editor.formError = err.Error()
		return m, nil
	}

	m.state = constants.StateCalendar
	m.refreshEvents()
	return m, nil
}

func (m Model) updateMap(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case keyMsg.Type == tea.KeyEsc:
		// Back to details; the draft state is untouched
		m.state = constants.StateEditor
		return m, nil
	case keyMsg.String() == "g":
		return m, m.routeView.RequestLocation()
	case keyMsg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if m.eventToDelete != nil {
			if err := m.store.DeleteEvent(m.grid.SelectedDate(), m.eventToDelete.ID); err != nil {
				m.statusMsg = errorText(err)
			}
			m.eventToDelete = nil
			m.refreshEvents()
		}
		m.state = constants.StateCalendar
	case "n", "esc":
		m.eventToDelete = nil
		m.state = constants.StateCalendar
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func errorText(err error) string {
	return "⚠ " + err.Error()
}
