package monthgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timetabled/timetabled/internal/calendar"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(5).
			Align(lipgloss.Center)

	dayStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	todayStyle = dayStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	selectedStyle = dayStyle.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205"))

	dotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))
)

// Model renders one month of the calendar and tracks the selected day. Month
// navigation wraps across year boundaries.
type Model struct {
	month  time.Month
	year   int
	cursor int // selected day of month, 1-based
	counts map[string]int
	now    func() time.Time
}

func New(counts map[string]int) Model {
	now := time.Now()
	return Model{
		month:  now.Month(),
		year:   now.Year(),
		cursor: now.Day(),
		counts: counts,
		now:    time.Now,
	}
}

// SetCounts replaces the per-date event counts used for day indicators.
func (m *Model) SetCounts(counts map[string]int) {
	m.counts = counts
}

// SelectedDate returns the canonical date key for the cursor position.
func (m Model) SelectedDate() string {
	return calendar.DateKey(m.year, m.month, m.cursor)
}

// Month and Year expose the displayed month.
func (m Model) Month() time.Month { return m.month }
func (m Model) Year() int         { return m.year }

func (m *Model) clampCursor() {
	days := calendar.DaysIn(m.month, m.year)
	if m.cursor > days {
		m.cursor = days
	}
	if m.cursor < 1 {
		m.cursor = 1
	}
}

// PrevMonth moves to the previous month, wrapping into December of the prior
// year from January.
func (m *Model) PrevMonth() {
	m.month, m.year = calendar.Prev(m.month, m.year)
	m.clampCursor()
}

// NextMonth moves to the next month, wrapping into January of the next year
// from December.
func (m *Model) NextMonth() {
	m.month, m.year = calendar.Next(m.month, m.year)
	m.clampCursor()
}

// GoToday jumps the view and cursor back to the current date.
func (m *Model) GoToday() {
	now := m.now()
	m.month = now.Month()
	m.year = now.Year()
	m.cursor = now.Day()
}

// MoveCursor shifts the selection by days, crossing month boundaries as
// needed.
func (m *Model) MoveCursor(delta int) {
	target := m.cursor + delta
	for target < 1 {
		m.PrevMonth()
		target += calendar.DaysIn(m.month, m.year)
	}
	for target > calendar.DaysIn(m.month, m.year) {
		target -= calendar.DaysIn(m.month, m.year)
		m.NextMonth()
	}
	m.cursor = target
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) View() string {
	grid := calendar.BuildMonth(m.month, m.year, m.counts, m.now())

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", calendar.MonthNames[int(m.month)-1], m.year)))
	b.WriteString("\n")

	var weekdays []string
	for _, wd := range calendar.WeekdayNames {
		weekdays = append(weekdays, weekdayStyle.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, weekdays...))
	b.WriteString("\n")

	var row []string
	for _, cell := range grid.Cells {
		if cell.Blank {
			row = append(row, dayStyle.Render(""))
		} else {
			label := fmt.Sprintf("%d", cell.Day)
			if cell.HasEvents {
				label += dotStyle.Render("•")
			}
			switch {
			case cell.Day == m.cursor:
				label = selectedStyle.Render(label)
			case cell.IsToday:
				label = todayStyle.Render(label)
			default:
				label = dayStyle.Render(label)
			}
			row = append(row, label)
		}
		if len(row) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = nil
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	return b.String()
}
