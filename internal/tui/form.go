package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maiwenn-k/jot/internal/contact"
	"github.com/maiwenn-k/jot/internal/store"
)

// Field order and debounce keys of the contact form. Each field debounces
// its own validation independently of the others.
var formFields = [3]string{"name", "email", "message"}

type contactForm struct {
	inputs [3]textinput.Model
	errs   [3]string
	focus  int
}

func newContactForm() contactForm {
	var f contactForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		f.inputs[i] = ti
	}
	f.inputs[0].Placeholder = "Your name"
	f.inputs[1].Placeholder = "you@example.org"
	f.inputs[2].Placeholder = "What do you want to tell us?"
	return f
}

func (f *contactForm) focusFirst() tea.Cmd {
	f.focus = 0
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[0].Focus()
}

func (f *contactForm) cycle(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// check runs the field's validator and records the inline message. Called
// from the update loop once the field's debounce window has elapsed.
func (f *contactForm) check(field, value string) {
	var err error
	switch field {
	case "name":
		err = contact.CheckName(value)
	case "email":
		err = contact.CheckEmail(value)
	case "message":
		err = contact.CheckMessage(value)
	default:
		return
	}
	for i, name := range formFields {
		if name != field {
			continue
		}
		f.errs[i] = ""
		var ve *store.ValidationError
		if errors.As(err, &ve) {
			f.errs[i] = ve.Reason
		}
	}
}

func (f *contactForm) values() (name, email, message string) {
	return f.inputs[0].Value(), f.inputs[1].Value(), f.inputs[2].Value()
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.errs[i] = ""
	}
}

func (m Model) updateContact(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.view = viewTodos
			return m, nil
		case "tab", "down":
			return m, m.form.cycle(1)
		case "shift+tab", "up":
			return m, m.form.cycle(-1)
		case "enter":
			if m.form.focus < len(m.form.inputs)-1 {
				return m, m.form.cycle(1)
			}
			return m.submitContact()
		}
	}

	i := m.form.focus
	var cmd tea.Cmd
	m.form.inputs[i], cmd = m.form.inputs[i].Update(msg)

	// Re-validate the field after a pause in typing; a new keystroke
	// silently discards the pending check and restarts the window.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		field := formFields[i]
		value := m.form.inputs[i].Value()
		m.deb.Schedule(field, fieldDebounce, func() {
			m.send(fieldCheckMsg{field: field, value: value})
		})
	}
	return m, cmd
}

func (m Model) submitContact() (tea.Model, tea.Cmd) {
	name, email, message := m.form.values()
	_, err := m.contacts.Submit(name, email, message)
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		m.form.check(ve.Field, fieldValue(&m.form, ve.Field))
		return m, m.showToast(ve.Error(), toastErr)
	}
	// Submitted: reset the form, drop any stale pending field checks.
	for _, f := range formFields {
		m.deb.Cancel(f)
	}
	m.form.reset()
	return m, m.outcomeToast(err, "message recorded")
}

func fieldValue(f *contactForm, field string) string {
	for i, name := range formFields {
		if name == field {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (m Model) viewContactForm(w, h int) string {
	labels := [3]string{"Name", "Email", "Message"}
	lines := []string{
		titleStyle.Render("Contact") + "   " +
			accentStyle.Render("Messages") + " " + mutedStyle.Render(strconv.Itoa(m.contacts.Len())),
		"",
	}
	for i := range m.form.inputs {
		label := labels[i]
		if i == m.form.focus {
			label = selectedStyle.Render(label)
		}
		lines = append(lines, label)
		lines = append(lines, m.form.inputs[i].View())
		if m.form.errs[i] != "" {
			lines = append(lines, errorStyle.Render(m.form.errs[i]))
		}
		lines = append(lines, "")
	}
	lines = append(lines, helpStyle.Render("enter next/submit • tab/shift+tab move • esc back to todos"))
	content := ""
	for _, ln := range lines {
		content += ln + "\n"
	}
	if m.toast != nil {
		content += m.renderToast() + "\n"
	}
	return panelStyle.Width(min(w-2, 72)).Render(content)
}
