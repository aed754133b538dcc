package daylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetabled/timetabled/internal/models"
)

// Item wraps one event for list rendering.
type Item struct {
	Event models.Event
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Event.Time, i.Event.Text)
}

func (i Item) Description() string {
	if i.Event.Destination != "" {
		return "📍 " + i.Event.Destination
	}
	return "No destination"
}

func (i Item) FilterValue() string { return i.Event.Text }

// Model lists the events of the selected date in bucket order.
type Model struct {
	list list.Model
}

func New(events []models.Event, width, height int) Model {
	l := list.New(toItems(events), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)

	return Model{
		list: l,
	}
}

func toItems(events []models.Event) []list.Item {
	items := make([]list.Item, len(events))
	for i, ev := range events {
		items[i] = Item{Event: ev}
	}
	return items
}

// SetEvents replaces the listed events, keeping the selection in range.
func (m *Model) SetEvents(events []models.Event) {
	m.list.SetItems(toItems(events))
	if m.list.Index() >= len(events) && len(events) > 0 {
		m.list.Select(len(events) - 1)
	}
}

// Selected returns the event under the cursor, if any.
func (m Model) Selected() (models.Event, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Event{}, false
	}
	return item.Event, true
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No events"
	}
	return m.list.View()
}
