// Package ui is the Bubble Tea dashboard: a day-bucketed event
// timeline with an add/edit form, one-shot delete undo, and a live XP
// bar. All state shown here is a projection of the reactive streams
// exposed by the controllers.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stratizen/stratizen/internal/config"
	"github.com/stratizen/stratizen/internal/controller"
	"github.com/stratizen/stratizen/internal/event"
	"github.com/stratizen/stratizen/internal/notify"
	"github.com/stratizen/stratizen/internal/utils"
	"github.com/stratizen/stratizen/internal/version"
	"github.com/stratizen/stratizen/internal/xp"
)

type mode int

const (
	modeNormal mode = iota
	modeForm
	modeHelp
)

// messages pumped from the reactive streams into the program
type (
	eventsMsg []event.Event
	xpMsg     xp.Xp
	themeMsg  config.ThemeMode
	savedMsg  struct {
		err   error
		isNew bool
	}
	deletedMsg  struct{ err error }
	restoredMsg struct{ err error }
	rowMsg      *event.Event
	awardedMsg struct {
		state    xp.Xp
		levelUps int
		err      error
	}
)

type Model struct {
	ctx    context.Context
	events *controller.Events
	xpc    *controller.XP
	prefs  *controller.Prefs

	loc *time.Location
	th  Theme

	eventsCh <-chan []event.Event
	xpCh     <-chan xp.Xp
	themeCh  <-chan config.ThemeMode

	// live view of the row being edited; nil while no form is open
	rowCh     <-chan *event.Event
	rowCancel context.CancelFunc

	list      []event.Event
	xpState   xp.Xp
	cursor    int
	filterIdx int // 0 = all groups, else event.Groups[filterIdx-1]

	mode        mode
	form        form
	lastDeleted *event.Event
	status      string

	width, height int
}

// Run wires the controllers into the dashboard and blocks until the
// user quits.
func Run(ctx context.Context, events *controller.Events, xpc *controller.XP, prefs *controller.Prefs, cfg config.Config) error {
	m := Model{
		ctx:      ctx,
		events:   events,
		xpc:      xpc,
		prefs:    prefs,
		loc:      cfg.Location(),
		th:       ThemeFor(prefs.Theme()),
		eventsCh: events.WatchAll(ctx),
		xpCh:     xpc.Watch(ctx),
		themeCh:  prefs.WatchTheme(ctx),
		form:     newForm(),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenEvents(), m.listenXP(), m.listenTheme())
}

// listen commands re-arm after every receive so each stream keeps
// feeding the program.

func (m Model) listenEvents() tea.Cmd {
	return func() tea.Msg {
		if evs, ok := <-m.eventsCh; ok {
			return eventsMsg(evs)
		}
		return nil
	}
}

func (m Model) listenXP() tea.Cmd {
	return func() tea.Msg {
		if x, ok := <-m.xpCh; ok {
			return xpMsg(x)
		}
		return nil
	}
}

func (m Model) listenRow() tea.Cmd {
	ch := m.rowCh
	return func() tea.Msg {
		if e, ok := <-ch; ok {
			return rowMsg(e)
		}
		return nil
	}
}

// stopRowWatch tears down the edited-row subscription when the form
// goes away.
func (m *Model) stopRowWatch() {
	if m.rowCancel != nil {
		m.rowCancel()
		m.rowCancel = nil
		m.rowCh = nil
	}
}

func (m Model) listenTheme() tea.Cmd {
	return func() tea.Msg {
		if mode, ok := <-m.themeCh; ok {
			return themeMsg(mode)
		}
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case eventsMsg:
		m.list = msg
		if m.cursor >= len(m.visible()) {
			m.cursor = max(0, len(m.visible())-1)
		}
		return m, m.listenEvents()

	case xpMsg:
		m.xpState = xp.Xp(msg)
		return m, m.listenXP()

	case themeMsg:
		m.th = ThemeFor(config.ThemeMode(msg))
		return m, m.listenTheme()

	case rowMsg:
		if m.mode != modeForm || m.rowCh == nil {
			return m, nil
		}
		if msg == nil {
			// The row under the edit form is gone; nothing to save to.
			m.stopRowWatch()
			m.mode = modeNormal
			m.status = "Event was deleted while editing."
			return m, nil
		}
		return m, m.listenRow()

	case savedMsg:
		if msg.err != nil {
			m.status = "Save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.isNew {
			return m, m.awardCmd(xp.PointsPerEvent)
		}
		m.status = "Event updated."
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.status = "Undo failed: " + msg.err.Error()
		} else {
			m.status = "Event restored."
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = "Delete failed: " + msg.err.Error()
		} else {
			m.status = "Event deleted. Press u to undo."
		}
		return m, nil

	case awardedMsg:
		if msg.err != nil {
			m.status = "Saved, but XP award failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("+%d XP", xp.PointsPerEvent)
		if msg.levelUps > 0 {
			m.status = fmt.Sprintf("+%d XP — level up! Now level %d", xp.PointsPerEvent, msg.state.Level)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeForm {
		switch msg.String() {
		case "esc":
			m.stopRowWatch()
			m.mode = modeNormal
			return m, nil
		case "tab", "down":
			m.form.next()
			return m, nil
		case "shift+tab", "up":
			m.form.prev()
			return m, nil
		case "enter":
			return m.saveForm()
		default:
			return m, m.form.update(msg)
		}
	}

	if m.mode == modeHelp {
		m.mode = modeNormal
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.mode = modeHelp
		return m, nil

	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "tab":
		m.filterIdx = (m.filterIdx + 1) % (len(event.Groups) + 1)
		m.cursor = 0
		return m, nil

	case "a":
		m.form.reset()
		m.mode = modeForm
		return m, nil

	case "e":
		if e, ok := m.selected(); ok {
			m.form.reset()
			m.form.load(e, m.loc)
			m.mode = modeForm
			rowCtx, cancel := context.WithCancel(m.ctx)
			m.rowCancel = cancel
			m.rowCh = m.events.WatchOne(rowCtx, e.ID)
			return m, m.listenRow()
		}
		return m, nil

	case "d":
		if e, ok := m.selected(); ok {
			copied := e
			m.lastDeleted = &copied
			return m, m.deleteCmd(e.ID)
		}
		return m, nil

	case "u":
		if m.lastDeleted == nil {
			return m, nil
		}
		// Re-insert a copy; the store assigns a fresh identity.
		restored := *m.lastDeleted
		restored.ID = 0
		m.lastDeleted = nil
		res := make(chan error, 1)
		if err := m.events.Add(restored, func(err error) { res <- err }); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return restoredMsg{err: <-res}
		}
	}

	return m, nil
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	e, err := m.form.toEvent(m.loc)
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}

	isNew := e.ID == 0
	res := make(chan error, 1)
	if isNew {
		err = m.events.Add(e, func(err error) { res <- err })
	} else {
		err = m.events.Update(e, func(err error) { res <- err })
	}
	if err != nil {
		m.form.errMsg = err.Error()
		return m, nil
	}

	m.stopRowWatch()
	m.mode = modeNormal
	return m, func() tea.Msg {
		return savedMsg{err: <-res, isNew: isNew}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	res := make(chan error, 1)
	if err := m.events.Delete(id, func(err error) { res <- err }); err != nil {
		return func() tea.Msg { return deletedMsg{err: err} }
	}
	return func() tea.Msg { return deletedMsg{err: <-res} }
}

func (m Model) awardCmd(points int) tea.Cmd {
	before := m.xpState.Level
	res := make(chan awardedMsg, 1)
	err := m.xpc.Award(points, func(x xp.Xp, err error) {
		if err == nil && x.Level > before {
			_ = notify.LevelUp(x.Level)
		}
		res <- awardedMsg{state: x, levelUps: x.Level - before, err: err}
	})
	if err != nil {
		return func() tea.Msg { return awardedMsg{err: err} }
	}
	return func() tea.Msg { return <-res }
}

// visible applies the group filter to the latest snapshot.
func (m Model) visible() []event.Event {
	if m.filterIdx == 0 {
		return m.list
	}
	group := event.Groups[m.filterIdx-1]
	out := make([]event.Event, 0, len(m.list))
	for _, e := range m.list {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) selected() (event.Event, bool) {
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return event.Event{}, false
	}
	return vis[m.cursor], true
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func (m Model) View() string {
	if m.mode == modeForm {
		return m.form.view(m.th)
	}
	if m.mode == modeHelp {
		return m.helpView()
	}

	var b strings.Builder
	now := time.Now().In(m.loc)

	b.WriteString(m.th.Title.Render(fmt.Sprintf("%s — %s", greeting(now), version.GetShortVersion())))
	b.WriteString("\n")
	b.WriteString(m.xpBarView())
	b.WriteString("\n\n")

	filter := "All"
	if m.filterIdx > 0 {
		filter = event.Groups[m.filterIdx-1]
	}
	b.WriteString(m.th.Label.Render("Group: ") + m.th.Value.Render(filter) + m.th.Hint.Render("  (tab to cycle)"))
	b.WriteString("\n\n")

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(m.th.Hint.Render("No events yet. Press a to add one."))
		b.WriteString("\n")
	}

	lastDay := ""
	for i, e := range vis {
		day := utils.DayLabel(e.Timestamp, now, m.loc)
		if day != lastDay {
			b.WriteString(m.th.Day.Render(day))
			b.WriteString("\n")
			lastDay = day
		}

		line := fmt.Sprintf("  %s  %-9s  %s",
			e.When(m.loc).Format("15:04"), e.Group, e.Title)
		if i == m.cursor {
			b.WriteString(m.th.Selected.Render("▸" + line[1:]))
		} else {
			b.WriteString(m.th.Value.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.th.Success.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.th.Hint.Render("a: add • e: edit • d: delete • u: undo • tab: group • ?: help • q: quit"))

	return b.String()
}

func (m Model) xpBarView() string {
	const width = 24
	progress := xp.ProgressInLevel(m.xpState.Points)
	filled := progress * width / xp.PointsPerLevel
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s %s",
		m.th.Label.Render(fmt.Sprintf("Level %d", m.xpState.Level)),
		m.th.XPBar.Render(bar),
		m.th.Hint.Render(fmt.Sprintf("%d/%d", progress, xp.PointsPerLevel)))
}

func (m Model) helpView() string {
	help := []string{
		"a        add event (+10 XP)",
		"e        edit selected event",
		"d        delete selected event",
		"u        undo last delete (re-inserts a copy)",
		"j/k      move cursor",
		"tab      cycle group filter",
		"q        quit",
		"",
		"Theme and typography follow `stratizen theme set`.",
		"Press any key to close.",
	}
	return m.th.Border.Render(m.th.Title.Render("Keys") + "\n\n" + strings.Join(help, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
