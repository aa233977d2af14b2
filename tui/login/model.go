package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/socialfeed/app"
	"github.com/CrestNiraj12/socialfeed/domain"
)

type mode int

const (
	loginMode mode = iota
	registerMode
)

// Field order per mode. Indices into Model.inputs.
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldPicture
	fieldCount
)

var (
	loginFields    = []int{fieldEmail, fieldPassword}
	registerFields = []int{fieldName, fieldEmail, fieldPassword, fieldConfirm, fieldPicture}
)

// --- Messages ---

// LoggedInMsg is sent once the server has issued a token. The root persists
// the session and shows the feed.
type LoggedInMsg struct {
	Session domain.Session
}

type loginResultMsg struct {
	session domain.Session
	err     error
}

type registerResultMsg struct {
	user domain.User
	err  error
}

// --- Model ---

// Model holds the login and registration forms.
type Model struct {
	auth       app.AuthService
	mode       mode
	inputs     []textinput.Model
	focus      int // Position within the active field list
	submitting bool
	err        error
	info       string
	spinner    spinner.Model
	width      int
}

// New creates the login form. info is shown above the form, e.g. after a
// session expired.
func New(auth app.AuthService, info string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Width = 40
		ti.CharLimit = 256
		inputs[i] = ti
	}
	inputs[fieldName].Placeholder = "Your name"
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldConfirm].Placeholder = "Repeat password"
	inputs[fieldConfirm].EchoMode = textinput.EchoPassword
	inputs[fieldPicture].Placeholder = "https://example.com/me.png"
	inputs[fieldPicture].CharLimit = 2048

	m := Model{
		auth:    auth,
		inputs:  inputs,
		info:    info,
		spinner: s,
	}
	m.focusField(0)
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Registering reports whether the sign-up form is shown.
func (m Model) Registering() bool {
	return m.mode == registerMode
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Err returns the validation or server error shown under the form.
func (m Model) Err() error {
	return m.err
}

func (m Model) fields() []int {
	if m.mode == registerMode {
		return registerFields
	}
	return loginFields
}

func (m *Model) focusField(pos int) tea.Cmd {
	fields := m.fields()
	if pos < 0 {
		pos = len(fields) - 1
	}
	if pos >= len(fields) {
		pos = 0
	}
	m.focus = pos
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[fields[pos]].Focus()
}

func (m *Model) switchMode(to mode) tea.Cmd {
	m.mode = to
	m.err = nil
	m.inputs[fieldPassword].Reset()
	m.inputs[fieldConfirm].Reset()
	return m.focusField(0)
}

func (m Model) value(field int) string {
	return m.inputs[field].Value()
}

func (m Model) registration() domain.Registration {
	return domain.Registration{
		Name:              strings.TrimSpace(m.value(fieldName)),
		Email:             strings.TrimSpace(m.value(fieldEmail)),
		Password:          m.value(fieldPassword),
		ConfirmPassword:   m.value(fieldConfirm),
		ProfilePictureURL: strings.TrimSpace(m.value(fieldPicture)),
	}
}

func (m Model) login(email, password string) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		sess, err := auth.Login(context.Background(), email, password)
		return loginResultMsg{session: sess, err: err}
	}
}

func (m Model) register(r domain.Registration) tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		user, err := auth.Register(context.Background(), r)
		if err == nil {
			log.Infof("[login] registered account %d", user.ID)
		}
		return registerResultMsg{user: user, err: err}
	}
}
