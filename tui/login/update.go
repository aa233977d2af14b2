package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.inputs[fieldPassword].Reset()
		sess := msg.session
		return m, func() tea.Msg { return LoggedInMsg{Session: sess} }

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.info = "Account created. Please log in."
		m.switchMode(loginMode)
		return m, m.focusField(1) // Email is kept, continue at password.

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	case "ctrl+r":
		if m.mode == loginMode {
			m.info = ""
			return m, m.switchMode(registerMode)
		}
		return m, m.switchMode(loginMode)
	case "esc":
		if m.mode == registerMode {
			return m, m.switchMode(loginMode)
		}
		return m, nil
	case "enter":
		if m.focus < len(m.fields())-1 {
			return m, m.focusField(m.focus + 1)
		}
		return m.submit()
	}

	m, cmd := m.updateFocused(msg)
	m.err = nil
	return m, cmd
}

// submit validates the active form and starts the request. Validation errors
// are shown inline and nothing is sent.
func (m Model) submit() (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.mode == registerMode {
		r := m.registration()
		if err := domain.ValidateRegistration(r); err != nil {
			m.err = err
			return m, nil
		}
		cmd = m.register(r)
	} else {
		email := strings.TrimSpace(m.value(fieldEmail))
		password := m.value(fieldPassword)
		if err := domain.ValidateLogin(email, password); err != nil {
			m.err = err
			return m, nil
		}
		cmd = m.login(email, password)
	}

	m.err = nil
	m.submitting = true
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	field := m.fields()[m.focus]
	var cmd tea.Cmd
	m.inputs[field], cmd = m.inputs[field].Update(msg)
	return m, cmd
}
