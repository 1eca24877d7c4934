// Package tui is the interactive adapter. It owns no record state: every
// intent goes through the controllers, every frame re-reads their views.
package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maiwenn-k/jot/internal/contact"
	"github.com/maiwenn-k/jot/internal/debounce"
	"github.com/maiwenn-k/jot/internal/store"
	"github.com/maiwenn-k/jot/internal/todo"
)

const (
	searchDebounce = 400 * time.Millisecond
	fieldDebounce  = 300 * time.Millisecond
	toastTTL       = 2500 * time.Millisecond
)

// listItem adapts a todo record to bubbles/list.Item.
type listItem struct {
	ID   int64
	Text string
	Done bool
}

func (i listItem) TitleText() string {
	box := boxUnchecked
	if i.Done {
		box = boxChecked
	}
	return fmt.Sprintf("%s %s", box, i.Text)
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.TitleText() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Done {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type view int

const (
	viewTodos view = iota
	viewContact
)

// Messages fed back into the loop by debounce timers and toast ticks.
type (
	searchCommitMsg struct{ term string }
	fieldCheckMsg   struct{ field, value string }
	toastExpireMsg  struct{ seq int }
)

type toastKind int

const (
	toastOK toastKind = iota
	toastErr
	toastInfo
)

type toast struct {
	text string
	kind toastKind
}

type Model struct {
	todos    *todo.Controller
	contacts *contact.Controller
	deb      *debounce.Scheduler
	send     func(tea.Msg)

	view view
	list list.Model

	filter todo.Filter
	term   string // committed search term

	searching bool
	search    textinput.Model

	adding bool
	input  textinput.Model
	addErr string

	form contactForm

	toast    *toast
	toastSeq int

	width, height int
}

func newModel(todos *todo.Controller, contacts *contact.Controller, deb *debounce.Scheduler, send func(tea.Msg)) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false) // search is ours, debounced
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	searchBind := key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	filterBind := key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	switchBind := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "contact form"))
	extra := func() []key.Binding { return []key.Binding{addBind, searchBind, filterBind, switchBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = todo.MaxTextLen

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search..."

	m := Model{
		todos:    todos,
		contacts: contacts,
		deb:      deb,
		send:     send,
		filter:   todo.FilterAll,
		list:     l,
		input:    ti,
		search:   si,
		form:     newContactForm(),
	}
	m.refresh()
	return m
}

// Run starts the interactive session over already-hydrated controllers.
func Run(todos *todo.Controller, contacts *contact.Controller) error {
	deb := debounce.NewScheduler()
	defer deb.Stop()

	var sender programSender
	m := newModel(todos, contacts, deb, sender.Send)
	p := tea.NewProgram(m, tea.WithAltScreen())
	sender.attach(p)
	_, err := p.Run()
	return err
}

// refresh re-derives the list items and title from the controller view.
func (m *Model) refresh() {
	items := m.todos.List(m.filter, m.term)
	li := make([]list.Item, 0, len(items))
	for _, t := range items {
		li = append(li, listItem{ID: t.ID, Text: t.Text, Done: t.Completed})
	}
	m.list.SetItems(li)

	total, completed := m.todos.Counts()
	title := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), completed,
		pendingStyle.Render("•"), total-completed,
		accentStyle.Render("Total"), total,
	)
	if m.filter != todo.FilterAll {
		title += mutedStyle.Render("  [" + string(m.filter) + "]")
	}
	if m.term != "" {
		title += mutedStyle.Render("  /" + m.term)
	}
	m.list.Title = title
}

func (m *Model) showToast(text string, kind toastKind) tea.Cmd {
	m.toast = &toast{text: text, kind: kind}
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpireMsg{seq: seq} })
}

// outcomeToast classifies a mutation result.
func (m *Model) outcomeToast(err error, okMsg string) tea.Cmd {
	if err == nil {
		return m.showToast(okMsg, toastOK)
	}
	var pe *store.PersistenceError
	if errors.As(err, &pe) {
		return m.showToast("save failed, change kept in memory", toastErr)
	}
	return m.showToast(err.Error(), toastErr)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case toastExpireMsg:
		// A newer toast restarts the clock; only the latest tick clears.
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case searchCommitMsg:
		m.term = msg.term
		m.refresh()
		return m, nil

	case fieldCheckMsg:
		m.form.check(msg.field, msg.value)
		return m, nil
	}

	if m.view == viewContact {
		return m.updateContact(msg)
	}
	return m.updateTodos(msg)
}

func (m Model) updateTodos(msg tea.Msg) (tea.Model, tea.Cmd) {
	// inline add mode
	if m.adding {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				_, err := m.todos.Add(m.input.Value())
				var ve *store.ValidationError
				if errors.As(err, &ve) {
					m.addErr = ve.Reason
					return m, nil
				}
				m.adding = false
				m.addErr = ""
				m.input.SetValue("")
				m.input.Blur()
				m.refresh()
				return m, m.outcomeToast(err, "added")
			case "esc":
				m.adding = false
				m.addErr = ""
				m.input.SetValue("")
				m.input.Blur()
				return m, nil
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// live search mode
	if m.searching {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				m.searching = false
				m.search.Blur()
				return m, nil
			case "esc":
				m.searching = false
				m.search.SetValue("")
				m.search.Blur()
				m.deb.Cancel("search")
				m.term = ""
				m.refresh()
				return m, nil
			}
		}
		m.search, cmd = m.search.Update(msg)
		// Only real keystrokes restart the quiescence window; cursor blink
		// ticks and the like must not starve the commit.
		if _, isKey := msg.(tea.KeyMsg); isKey {
			term := m.search.Value()
			m.deb.Schedule("search", searchDebounce, func() {
				m.send(searchCommitMsg{term: term})
			})
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.view = viewContact
			return m, m.form.focusFirst()
		case " ":
			if it, ok := m.selected(); ok {
				err := m.todos.Toggle(it.ID)
				m.refresh()
				return m, m.outcomeToast(err, "toggled")
			}
			return m, m.showToast("nothing selected", toastInfo)
		case "d":
			if it, ok := m.selected(); ok {
				err := m.todos.Delete(it.ID)
				m.refresh()
				return m, m.outcomeToast(err, "removed")
			}
			return m, m.showToast("nothing selected", toastInfo)
		case "a":
			m.adding = true
			m.addErr = ""
			m.input.SetValue("")
			m.input.Focus()
			return m, nil
		case "f":
			switch m.filter {
			case todo.FilterAll:
				m.filter = todo.FilterActive
			case todo.FilterActive:
				m.filter = todo.FilterCompleted
			default:
				m.filter = todo.FilterAll
			}
			m.refresh()
			return m, nil
		case "/":
			m.searching = true
			m.search.SetValue(m.term)
			m.search.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selected() (listItem, bool) {
	i := m.list.Index()
	if i < 0 || i >= len(m.list.Items()) {
		return listItem{}, false
	}
	it, ok := m.list.Items()[i].(listItem)
	return it, ok
}

func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}

	if m.view == viewContact {
		return m.viewContactForm(w, h)
	}

	listHeight := h - 4
	if m.adding || m.searching {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += " — " + errorStyle.Render(m.addErr)
		}
		content += "\n" + panelStyle.Render(title+"\n"+m.input.View())
	}
	if m.searching {
		content += "\n" + panelStyle.Render("Search (updates as you pause typing)\n"+m.search.View())
	}
	if m.toast != nil {
		content += "\n" + m.renderToast()
	}
	return panelStyle.Render(content)
}

func (m Model) renderToast() string {
	switch m.toast.kind {
	case toastErr:
		return toastErrStyle.Render("✖ " + m.toast.text)
	case toastInfo:
		return toastInfoStyle.Render("ℹ " + m.toast.text)
	default:
		return toastOKStyle.Render("✔ " + m.toast.text)
	}
}
