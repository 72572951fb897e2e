// Package tui is the interactive front end. Every key that changes data is
// turned into an app.Action addressed by entry ID, dispatched, and the list
// is rebuilt from the rows the session returns.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/shoplist/internal/app"
	"github.com/Makepad-fr/shoplist/internal/store"
	"github.com/Makepad-fr/shoplist/internal/ui"
)

const emptyNameNotice = "name is empty, press enter again to keep it"

type mode int

const (
	browsing mode = iota
	adding
	editing
	searching
)

// listItem adapts app.Row to bubbles/list.Item
type listItem struct{ app.Row }

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return ui.Ago(i.CreatedAt) }
func (i listItem) FilterValue() string { return i.Name }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box, name := t.Muted.Render(t.BoxUnchecked), it.Name
	if it.Checked {
		box, name = t.Success.Render(t.BoxChecked), t.Done.Render(it.Name)
	}
	if it.Name == "" {
		name = t.Muted.Render("(unnamed)")
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, name, t.Muted.Render(it.Description()))
}

type keyMap struct {
	toggle, remove, add, edit, sort, filter, search key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
		remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "show")),
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.toggle, k.remove, k.add, k.edit, k.sort, k.filter, k.search}
}

// Model is the Bubble Tea model over one session.
type Model struct {
	session *app.Session
	list    list.Model
	keys    keyMap

	mode   mode
	input  textinput.Model // shared by add, rename and search
	editID string

	confirmEmpty bool
	notice       string
	noticeIsErr  bool

	width, height int
}

// New builds the model and renders the session's current rows.
func New(s *app.Session) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.DisableQuitKeybindings()

	keys := newKeyMap()
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		session: s,
		list:    l,
		keys:    keys,
		input:   ti,
		width:   80,
		height:  24,
	}
	m.resize()
	m.setRows(s.Rows())
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(s *app.Session, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case adding, editing:
			return m.updateNaming(msg)
		case searching:
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	var cmd tea.Cmd
	if m.mode != browsing {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case msg.String() == "q":
		return m, tea.Quit
	case msg.String() == "esc":
		if m.session.Config().Search != "" {
			m.dispatch(app.SetSearch{Term: ""})
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		if it, ok := m.selected(); ok {
			m.dispatch(app.Toggle{ID: it.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if it, ok := m.selected(); ok {
			m.dispatch(app.Delete{ID: it.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.openInput(adding, "", "New item name...")
		return m, textinput.Blink
	case key.Matches(msg, m.keys.edit):
		if it, ok := m.selected(); ok {
			m.editID = it.ID
			m.openInput(editing, it.Name, "New name...")
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.sort):
		m.dispatch(app.SetSort{Mode: m.session.Config().Sort.Next()})
		return m, nil
	case key.Matches(msg, m.keys.filter):
		m.dispatch(app.SetFilter{Filter: m.session.Config().Filter.Next()})
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.openInput(searching, m.session.Config().Search, "Search names...")
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateNaming handles the add and rename prompts. The store accepts empty
// names; the prompt only asks for confirmation before submitting one.
func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.input.Value()
		if strings.TrimSpace(name) == "" && !m.confirmEmpty {
			m.confirmEmpty = true
			m.setNotice(emptyNameNotice, false)
			return m, nil
		}
		if m.mode == editing {
			a := app.Rename{ID: m.editID, Name: name}
			m.closeInput()
			m.dispatch(a)
			return m, nil
		}
		m.closeInput()
		if m.dispatch(app.Add{Name: name}) {
			m.list.Select(m.indexOfLastAdded())
		}
		return m, nil
	case "esc":
		m.closeInput()
		return m, nil
	}
	m.confirmEmpty = false
	m.notice = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateSearch re-projects on every keystroke.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.closeInput()
		return m, nil
	case "esc":
		m.closeInput()
		m.dispatch(app.SetSearch{Term: ""})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.session.Config().Search {
		m.dispatch(app.SetSearch{Term: m.input.Value()})
	}
	return m, cmd
}

// dispatch runs a through the session and rebuilds the list. It reports
// whether the action was accepted.
func (m *Model) dispatch(a app.Action) bool {
	rows, err := m.session.Dispatch(a)
	m.setRows(rows)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, store.ErrIndexOutOfRange) {
			msg = "that item is gone"
		}
		m.setNotice(msg, true)
		return false
	}
	return true
}

// setRows replaces the list items, keeping the cursor on the same entry when
// it is still visible.
func (m *Model) setRows(rows []app.Row) {
	prev, hadPrev := m.selected()
	items := make([]list.Item, 0, len(rows))
	cursor := m.list.Index()
	for i, r := range rows {
		items = append(items, listItem{Row: r})
		if hadPrev && r.ID == prev.ID {
			cursor = i
		}
	}
	m.list.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// indexOfLastAdded finds the newest entry in the current projection.
func (m Model) indexOfLastAdded() int {
	best, at := -1, m.list.Index()
	for i, item := range m.list.Items() {
		if it, ok := item.(listItem); ok && it.Position > best {
			best, at = it.Position, i
		}
	}
	return at
}

func (m *Model) openInput(md mode, value, placeholder string) {
	m.mode = md
	m.confirmEmpty = false
	m.notice = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.resize()
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.editID = ""
	m.confirmEmpty = false
	m.notice = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m *Model) setNotice(msg string, isErr bool) {
	m.notice, m.noticeIsErr = msg, isErr
}

func (m *Model) resize() {
	chrome := 8 // border, header, progress, view line, blank, notice
	if m.mode != browsing {
		chrome += 4
	}
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	t := ui.Current()
	checked, unchecked := m.session.Store().Stats()

	lines := []string{
		ui.Header(checked, unchecked),
		t.Muted.Render(ui.ProgressBar(checked, checked+unchecked, 28)),
		ui.ViewLine(m.session.Config()),
		"",
	}
	if len(m.list.Items()) == 0 {
		lines = append(lines, t.Muted.Render("no items"))
	} else {
		lines = append(lines, m.list.View())
	}

	if m.mode != browsing {
		title := map[mode]string{adding: "Add item", editing: "Rename item", searching: "Search"}[m.mode]
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		lines = append(lines, bar.Render(title+"\n"+m.input.View()))
	}
	if m.notice != "" {
		style := t.Pending
		if m.noticeIsErr {
			style = t.Error
		}
		lines = append(lines, style.Render(m.notice))
	}
	return ui.PanelString(lines)
}
