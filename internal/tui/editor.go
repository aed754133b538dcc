package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timetabled/timetabled/internal/constants"
	"github.com/timetabled/timetabled/internal/models"
	"github.com/timetabled/timetabled/internal/tui/components/suggest"
	"github.com/timetabled/timetabled/internal/validation"
)

type editorField int

const (
	fieldHour editorField = iota
	fieldMinute
	fieldDestination
	fieldText
	numEditorFields
)

// editorModel is the event editor draft. It exists in two flavors: a cleared
// draft for new events, or one prefilled from a stored event being edited.
// The draft survives round trips into the map view untouched.
type editorModel struct {
	hour   textinput.Model
	minute textinput.Model
	text   textinput.Model
	dest   suggest.Model

	// Destination is only committed by picking a suggestion; typed text that
	// was never selected resolves to no destination.
	destName   string
	destCoords *models.Coordinate

	focus     editorField
	date      string
	editingID string
	formError string
}

func newEditor(searcher suggest.Searcher) editorModel {
	hour := textinput.New()
	hour.Placeholder = "HH"
	hour.CharLimit = 2
	hour.Width = 3

	minute := textinput.New()
	minute.Placeholder = "MM"
	minute.CharLimit = 2
	minute.Width = 3

	text := textinput.New()
	text.Placeholder = "Event text (maximum 60 characters)"
	// Hard cap at the input: the 61st character is rejected, not trimmed later
	text.CharLimit = constants.MaxEventTextLen
	text.Width = 48

	return editorModel{
		hour:   hour,
		minute: minute,
		text:   text,
		dest:   suggest.New(searcher),
	}
}

// reset clears the draft for a brand new event on the given date.
func (e *editorModel) reset(date string) tea.Cmd {
	e.date = date
	e.editingID = ""
	e.hour.SetValue("")
	e.minute.SetValue("")
	e.text.SetValue("")
	e.dest.SetValue("")
	e.destName = ""
	e.destCoords = nil
	e.formError = ""
	return e.setFocus(fieldHour)
}

// prefill loads an existing event into the draft, splitting the stored time
// on its separator.
func (e *editorModel) prefill(date string, ev models.Event) tea.Cmd {
	e.date = date
	e.editingID = ev.ID
	parts := strings.SplitN(ev.Time, ":", 2)
	e.hour.SetValue(parts[0])
	if len(parts) > 1 {
		e.minute.SetValue(parts[1])
	} else {
		e.minute.SetValue("")
	}
	e.text.SetValue(ev.Text)
	e.dest.SetValue(ev.Destination)
	e.destName = ev.Destination
	e.destCoords = ev.DestinationCoords
	e.formError = ""
	return e.setFocus(fieldHour)
}

func (e *editorModel) setFocus(f editorField) tea.Cmd {
	e.focus = f
	e.hour.Blur()
	e.minute.Blur()
	e.text.Blur()
	e.dest.Blur()
	switch f {
	case fieldHour:
		return e.hour.Focus()
	case fieldMinute:
		return e.minute.Focus()
	case fieldDestination:
		return e.dest.Focus()
	case fieldText:
		return e.text.Focus()
	}
	return nil
}

func (e *editorModel) nextField() tea.Cmd {
	return e.setFocus((e.focus + 1) % numEditorFields)
}

func (e *editorModel) prevField() tea.Cmd {
	return e.setFocus((e.focus + numEditorFields - 1) % numEditorFields)
}

// editing reports whether the draft modifies an existing event.
func (e editorModel) editing() bool {
	return e.editingID != ""
}

// draft validates the inputs and assembles the store draft. Out-of-range
// values are rejected with a form error, never clamped.
func (e *editorModel) draft() (models.EventDraft, bool) {
	if err := validation.ValidateHourField(strings.TrimSpace(e.hour.Value())); err != nil {
		e.formError = err.Error()
		return models.EventDraft{}, false
	}
	if err := validation.ValidateMinuteField(strings.TrimSpace(e.minute.Value())); err != nil {
		e.formError = err.Error()
		return models.EventDraft{}, false
	}

	hour, _ := strconv.Atoi(strings.TrimSpace(e.hour.Value()))
	minute, _ := strconv.Atoi(strings.TrimSpace(e.minute.Value()))

	draft := models.EventDraft{
		Hour:              hour,
		Minute:            minute,
		Text:              e.text.Value(),
		Destination:       e.destName,
		DestinationCoords: e.destCoords,
	}
	if err := validation.ValidateDraft(draft); err != nil {
		e.formError = err.Error()
		return models.EventDraft{}, false
	}
	e.formError = ""
	return draft, true
}

func (e editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch e.focus {
	case fieldHour:
		e.hour, cmd = e.hour.Update(msg)
	case fieldMinute:
		e.minute, cmd = e.minute.Update(msg)
	case fieldText:
		e.text, cmd = e.text.Update(msg)
	case fieldDestination:
		e.dest, cmd = e.dest.Update(msg)
	}
	cmds = append(cmds, cmd)

	// Debounce and search-result messages must reach the suggest component
	// even when focus has moved on, so stale results are still discarded
	if _, isKey := msg.(tea.KeyMsg); !isKey && e.focus != fieldDestination {
		e.dest, cmd = e.dest.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Suggestion selection commits the destination to the draft
	if sel, ok := msg.(suggest.SelectedMsg); ok {
		e.destName = sel.Place.DisplayName
		c := sel.Place.Coord
		e.destCoords = &c
	}

	return e, tea.Batch(cmds...)
}
