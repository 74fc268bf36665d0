package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/utils"
)

const (
	fieldTitle = iota
	fieldDesc
	fieldGroup
	fieldDate
	fieldCount
)

// form is the add/edit dialog. The group field is a fixed-choice
// selector cycled with left/right; the rest are free text.
type form struct {
	title    textinput.Model
	desc     textinput.Model
	date     textinput.Model
	groupIdx int
	field    int
	editID   int64 // 0 means a new event
	errMsg   string
}

func newForm() form {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	date := textinput.New()
	date.Placeholder = "tomorrow 09:00"
	date.CharLimit = 40

	return form{title: title, desc: desc, date: date}
}

// load fills the form from an existing event for editing.
func (f *form) load(e event.Event, loc *time.Location) {
	f.editID = e.ID
	f.title.SetValue(e.Title)
	f.desc.SetValue(e.Description)
	f.date.SetValue(time.UnixMilli(e.Timestamp).In(loc).Format("2006-01-02 15:04"))
	f.groupIdx = 0
	for i, g := range event.Groups {
		if g == e.Group {
			f.groupIdx = i
			break
		}
	}
	f.setFocus(fieldTitle)
}

func (f *form) reset() {
	f.editID = 0
	f.errMsg = ""
	f.title.SetValue("")
	f.desc.SetValue("")
	f.date.SetValue("")
	f.groupIdx = 0
	f.setFocus(fieldTitle)
}

func (f *form) setFocus(field int) {
	f.field = field
	f.title.Blur()
	f.desc.Blur()
	f.date.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDesc:
		f.desc.Focus()
	case fieldDate:
		f.date.Focus()
	}
}

func (f *form) next() { f.setFocus((f.field + 1) % fieldCount) }
func (f *form) prev() { f.setFocus((f.field + fieldCount - 1) % fieldCount) }

// update routes a message to the focused field. Group selection moves
// with left/right arrows.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && f.field == fieldGroup {
		switch key.String() {
		case "left", "h":
			f.groupIdx = (f.groupIdx + len(event.Groups) - 1) % len(event.Groups)
			return nil
		case "right", "l", " ":
			f.groupIdx = (f.groupIdx + 1) % len(event.Groups)
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.field {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDesc:
		f.desc, cmd = f.desc.Update(msg)
	case fieldDate:
		f.date, cmd = f.date.Update(msg)
	}
	return cmd
}

// toEvent validates the form and builds the event to store.
func (f *form) toEvent(loc *time.Location) (event.Event, error) {
	e := event.Event{
		ID:          f.editID,
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Group:       event.Groups[f.groupIdx],
	}
	if err := event.Validate(e); err != nil {
		return event.Event{}, err
	}

	dateInput := strings.TrimSpace(f.date.Value())
	if dateInput == "" {
		dateInput = "now"
	}
	when, err := utils.ParseFlexibleDate(dateInput, loc)
	if err != nil {
		return event.Event{}, err
	}
	e.Timestamp = when.UnixMilli()
	return e, nil
}

func (f *form) view(th Theme) string {
	var b strings.Builder

	header := "New Event"
	if f.editID != 0 {
		header = fmt.Sprintf("Edit Event %d", f.editID)
	}
	b.WriteString(th.Title.Render(header))
	b.WriteString("\n\n")

	b.WriteString(th.Label.Render("Title") + "\n")
	b.WriteString(f.title.View() + "\n\n")
	b.WriteString(th.Label.Render("Description") + "\n")
	b.WriteString(f.desc.View() + "\n\n")

	b.WriteString(th.Label.Render("Group") + "  ")
	for i, g := range event.Groups {
		if i == f.groupIdx {
			b.WriteString(th.Selected.Render("[" + g + "]"))
		} else {
			b.WriteString(th.Hint.Render(" " + g + " "))
		}
	}
	if f.field == fieldGroup {
		b.WriteString(th.Hint.Render("  ←/→"))
	}
	b.WriteString("\n\n")

	b.WriteString(th.Label.Render("When") + "\n")
	b.WriteString(f.date.View() + "\n")

	if f.errMsg != "" {
		b.WriteString("\n" + th.Error.Render(f.errMsg) + "\n")
	}
	b.WriteString("\n" + th.Hint.Render("tab: next field • enter: save • esc: cancel"))

	return th.Border.Render(b.String())
}
