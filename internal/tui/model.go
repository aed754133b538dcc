package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/geo"
	"github.com/timetabled/timetabled/internal/locate"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/storage"
	"github.com/timetabled/timetabled/internal/tui/components/daylist"
	"github.com/timetabled/timetabled/internal/tui/components/monthgrid"
	"github.com/timetabled/timetabled/internal/tui/components/routeview"
)

type Model struct {
	store   storage.Provider
	geocli  *geo.Client
	locator locate.Locator

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	grid      monthgrid.Model
	dayList   daylist.Model
	editor    editorModel
	routeView routeview.Model

	eventToDelete *models.Event

	quitting  bool
	width     int
	height    int
	statusMsg string
}

func NewModel(store storage.Provider, geocli *geo.Client, locator locate.Locator) Model {
	m := Model{
		store:     store,
		geocli:    geocli,
		locator:   locator,
		state:     constants.StateCalendar,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		grid:      monthgrid.New(nil),
		dayList:   daylist.New(nil, 0, 0),
		editor:    newEditor(geocli),
		routeView: routeview.New(geocli, locator),
	}
	m.refreshEvents()
	return m
}

// refreshEvents reloads indicator counts and the selected day's bucket from
// the store.
func (m *Model) refreshEvents() {
	all, err := m.store.AllEvents()
	if err != nil {
		m.statusMsg = "⚠ Could not read events"
		return
	}
	counts := make(map[string]int, len(all))
	for date, bucket := range all {
		counts[date] = len(bucket)
	}
	m.grid.SetCounts(counts)
	m.dayList.SetEvents(all[m.grid.SelectedDate()])
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateCalendar:
		return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Quit, m.keys.Help}
	case constants.StateEditor:
		return []key.Binding{m.keys.Back}
	case constants.StateMap:
		return []key.Binding{m.keys.Back}
	}
	return []key.Binding{m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Back}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today}
	actions := []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Enter}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
