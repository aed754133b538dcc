package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/models"
)

// Searcher resolves free-text queries into place candidates. Satisfied by
// *geo.Client; tests substitute their own.
type Searcher interface {
	Search(ctx context.Context, query string) []models.PlaceCandidate
}

// SelectedMsg is emitted when the user picks a candidate.
type SelectedMsg struct {
	Place models.PlaceCandidate
}

// debounceMsg fires when the debounce window after a keystroke elapses. The
// generation stamps which keystroke armed it.
type debounceMsg struct {
	gen   int
	query string
}

// resultsMsg carries candidates back from a completed search.
type resultsMsg struct {
	gen        int
	candidates []models.PlaceCandidate
}

var (
	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	cursorSuggestionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205"))
)

// Model is a destination search box with a debounced suggestions dropdown.
//
// Every keystroke bumps a generation counter. The pending debounce timer and
// any in-flight search both carry the generation that started them, so a
// newer keystroke implicitly cancels them: their messages arrive stamped with
// a stale generation and are dropped. Only results for the latest query can
// ever reach the dropdown.
type Model struct {
	Input    textinput.Model
	searcher Searcher

	suggestions []models.PlaceCandidate
	cursor      int
	gen         int
}

func New(searcher Searcher) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a location"
	ti.Prompt = "📍 "
	return Model{
		Input:    ti,
		searcher: searcher,
	}
}

// SetValue pre-fills the input (editing an existing event) without opening
// the dropdown.
func (m *Model) SetValue(v string) {
	m.Input.SetValue(v)
	m.suggestions = nil
	m.cursor = 0
	m.gen++
}

func (m Model) Value() string {
	return m.Input.Value()
}

func (m *Model) Focus() tea.Cmd {
	return m.Input.Focus()
}

func (m *Model) Blur() {
	m.Input.Blur()
	m.suggestions = nil
	m.cursor = 0
	m.gen++
}

func (m Model) Focused() bool {
	return m.Input.Focused()
}

// HasSuggestions reports whether the dropdown is open.
func (m Model) HasSuggestions() bool {
	return len(m.suggestions) > 0
}

// Suggestions exposes the current dropdown contents.
func (m Model) Suggestions() []models.PlaceCandidate {
	return m.suggestions
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.HasSuggestions() {
			switch msg.Type {
			case tea.KeyUp:
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case tea.KeyDown:
				if m.cursor < len(m.suggestions)-1 {
					m.cursor++
				}
				return m, nil
			case tea.KeyEnter:
				place := m.suggestions[m.cursor]
				m.Input.SetValue(place.DisplayName)
				m.suggestions = nil
				m.cursor = 0
				m.gen++
				return m, func() tea.Msg { return SelectedMsg{Place: place} }
			case tea.KeyEsc:
				m.suggestions = nil
				m.cursor = 0
				m.gen++
				return m, nil
			}
		}

		before := m.Input.Value()
		var cmd tea.Cmd
		m.Input, cmd = m.Input.Update(msg)
		after := m.Input.Value()

		if after == before {
			return m, cmd
		}

		// A new keystroke cancels the pending debounce outright: the timer
		// that is already armed will report a stale generation.
		m.gen++
		gen := m.gen
		query := strings.TrimSpace(after)
		if query == "" {
			m.suggestions = nil
			m.cursor = 0
			return m, cmd
		}
		debounce := tea.Tick(constants.DebounceInterval, func(time.Time) tea.Msg {
			return debounceMsg{gen: gen, query: query}
		})
		return m, tea.Batch(cmd, debounce)

	case debounceMsg:
		if msg.gen != m.gen {
			// Superseded by a newer keystroke
			return m, nil
		}
		return m, m.searchCmd(msg.gen, msg.query)

	case resultsMsg:
		if msg.gen != m.gen {
			// Stale response for an older query; discard
			return m, nil
		}
		m.suggestions = msg.candidates
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) searchCmd(gen int, query string) tea.Cmd {
	return func() tea.Msg {
		candidates := m.searcher.Search(context.Background(), query)
		return resultsMsg{gen: gen, candidates: candidates}
	}
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())
	for i, s := range m.suggestions {
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(cursorSuggestionStyle.Render("  " + s.DisplayName))
		} else {
			b.WriteString(suggestionStyle.Render("  " + s.DisplayName))
		}
	}
	return b.String()
}
