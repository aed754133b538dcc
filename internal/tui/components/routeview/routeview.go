package routeview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timetabled/timetabled/internal/locate"
	"github.com/timetabled/timetabled/internal/logger"
	"github.com/timetabled/timetabled/internal/models"
)

// Router computes a driving route. Satisfied by *geo.Client.
type Router interface {
	Route(ctx context.Context, origin, dest models.Coordinate) (*models.RouteResult, error)
}

// LocationState tracks whether the user's position is known.
type LocationState int

const (
	NoLocation LocationState = iota
	LocationPending
	LocationKnown
)

// locationMsg reports the outcome of a geolocation request.
type locationMsg struct {
	coord models.Coordinate
	err   error
}

// routeMsg reports the outcome of a route fetch. seq identifies which fetch
// this answers.
type routeMsg struct {
	seq   int
	route *models.RouteResult
	err   error
}

var (
	etaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	destStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// Model presents the route from the user's position to an event destination.
//
// Exactly one route fetch is authoritative at a time: each fetch carries a
// sequence number, and a fetch that completes after a newer one was issued is
// dropped rather than allowed to overwrite newer results.
type Model struct {
	router  Router
	locator locate.Locator

	state    LocationState
	origin   models.Coordinate
	dest     *models.Coordinate
	destName string

	route    *models.RouteResult
	fetching bool
	seq      int

	notice  string
	spinner spinner.Model
}

func New(router Router, locator locate.Locator) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		router:  router,
		locator: locator,
		spinner: sp,
	}
}

// State exposes the presenter's location state.
func (m Model) State() LocationState {
	return m.state
}

// Route exposes the live route result, nil when none is known yet.
func (m Model) Route() *models.RouteResult {
	return m.route
}

// SetDestination points the presenter at a new destination. If the user's
// location is already known, a fresh route fetch starts immediately.
func (m *Model) SetDestination(coord models.Coordinate, name string) tea.Cmd {
	if m.dest != nil && *m.dest == coord {
		m.destName = name
		return nil
	}
	c := coord
	m.dest = &c
	m.destName = name
	m.route = nil
	if m.state == LocationKnown {
		return m.fetchRoute()
	}
	return nil
}

// RequestLocation starts a geolocation request on explicit user action.
func (m *Model) RequestLocation() tea.Cmd {
	if m.state == LocationPending {
		return nil
	}
	m.state = LocationPending
	m.notice = ""
	locator := m.locator
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			coord, err := locator.Locate(context.Background())
			return locationMsg{coord: coord, err: err}
		},
	)
}

// fetchRoute issues a new authoritative route fetch, superseding any that is
// still in flight.
func (m *Model) fetchRoute() tea.Cmd {
	if m.dest == nil {
		return nil
	}
	m.seq++
	m.fetching = true
	seq := m.seq
	origin, dest := m.origin, *m.dest
	router := m.router
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			route, err := router.Route(context.Background(), origin, dest)
			return routeMsg{seq: seq, route: route, err: err}
		},
	)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case locationMsg:
		if m.state != LocationPending {
			return m, nil
		}
		if msg.err != nil {
			// Revert and tell the user; no route is computed
			m.state = NoLocation
			m.notice = fmt.Sprintf("Could not determine your location: %v", msg.err)
			logger.Warn("Geolocation failed", "error", msg.err)
			return m, nil
		}
		m.state = LocationKnown
		m.origin = msg.coord
		return m, m.fetchRoute()

	case routeMsg:
		if msg.seq != m.seq {
			// Answer to a superseded fetch; a newer request owns the view
			return m, nil
		}
		m.fetching = false
		if msg.err != nil {
			// Soft failure: stay in the "no route yet" state
			logger.Warn("Route fetch failed", "error", msg.err)
			m.route = nil
			return m, nil
		}
		m.route = msg.route
		return m, nil

	case spinner.TickMsg:
		if m.state != LocationPending && !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.destName != "" {
		b.WriteString(destStyle.Render("Destination: " + m.destName))
		b.WriteString("\n\n")
	}

	switch m.state {
	case NoLocation:
		if m.notice != "" {
			b.WriteString(noticeStyle.Render(m.notice))
			b.WriteString("\n")
		}
		b.WriteString("Press g to use your current location")
	case LocationPending:
		b.WriteString(m.spinner.View() + " Locating…")
	case LocationKnown:
		b.WriteString(fmt.Sprintf("From %.4f, %.4f\n", m.origin.Latitude, m.origin.Longitude))
		switch {
		case m.fetching:
			b.WriteString(m.spinner.View() + " Fetching route…")
		case m.route == nil:
			b.WriteString("No route available")
		default:
			b.WriteString(etaStyle.Render(fmt.Sprintf("ETA %d min · %s", m.route.ETAMinutes, m.route.DistanceLabel())))
			b.WriteString("\n\nDirections:\n")
			for i, step := range m.route.Steps {
				b.WriteString(stepStyle.Render(fmt.Sprintf("%2d. %s  %s", i+1, step.Instruction, step.Distance)))
				b.WriteString("\n")
			}
			if n := len(m.route.Geometry); n > 0 {
				b.WriteString(subtle(fmt.Sprintf("\nRoute path: %d points", n)))
			}
		}
	}

	return b.String()
}

func subtle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(s)
}
