package login

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/socialfeed/domain"
)

type stubAuth struct {
	loginErr    error
	registerErr error
	logins      int
	registered  []domain.Registration
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (domain.Session, error) {
	s.logins++
	if s.loginErr != nil {
		return domain.Session{}, s.loginErr
	}
	return domain.Session{Token: "tok", User: domain.User{ID: 1, Email: email}}, nil
}

func (s *stubAuth) Register(_ context.Context, r domain.Registration) (domain.User, error) {
	s.registered = append(s.registered, r)
	if s.registerErr != nil {
		return domain.User{}, s.registerErr
	}
	return domain.User{ID: 2, Name: r.Name, Email: r.Email}, nil
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

// resultOf runs cmd and returns the first message that is not a spinner tick.
func resultOf(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch[0]()
	}
	return msg
}

func TestLogin_InvalidEmailBlocksSubmit(t *testing.T) {
	auth := &stubAuth{}
	m := New(auth, "")
	m = typeText(m, "not-an-email")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "secret")
	m, cmd := press(m, tea.KeyEnter)

	if cmd != nil || m.Submitting() {
		t.Fatal("invalid form must not submit")
	}
	if !errors.Is(m.Err(), domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", m.Err())
	}
	if auth.logins != 0 {
		t.Fatal("no request expected")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Invalid email") {
		t.Fatalf("expected inline error, got:\n%s", ansi.Strip(m.View()))
	}
}

func TestLogin_ShortPasswordBlocksSubmit(t *testing.T) {
	m := New(&stubAuth{}, "")
	m = typeText(m, "ana@example.com")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "abc")
	m, _ = press(m, tea.KeyEnter)
	if !errors.Is(m.Err(), domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", m.Err())
	}
}

func TestLogin_SuccessEmitsLoggedIn(t *testing.T) {
	auth := &stubAuth{}
	m := New(auth, "")
	m = typeText(m, "ana@example.com")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "secret")
	m, cmd := press(m, tea.KeyEnter)
	if !m.Submitting() {
		t.Fatal("expected submitting state")
	}

	m, cmd = m.Update(resultOf(t, cmd))
	msg, ok := resultOf(t, cmd).(LoggedInMsg)
	if !ok {
		t.Fatal("expected LoggedInMsg")
	}
	if msg.Session.Token != "tok" || msg.Session.User.Email != "ana@example.com" {
		t.Fatalf("unexpected session: %+v", msg.Session)
	}
	if m.Submitting() || m.value(fieldPassword) != "" {
		t.Fatal("password should be cleared after login")
	}
}

func TestLogin_ServerErrorShownInline(t *testing.T) {
	auth := &stubAuth{loginErr: domain.ErrNoToken}
	m := New(auth, "")
	m = typeText(m, "ana@example.com")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "secret")
	m, cmd := press(m, tea.KeyEnter)
	m, cmd = m.Update(resultOf(t, cmd))

	if cmd != nil {
		t.Fatal("failed login must not emit LoggedInMsg")
	}
	if !errors.Is(m.Err(), domain.ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", m.Err())
	}
}

func TestRegister_ValidatesEveryField(t *testing.T) {
	auth := &stubAuth{}
	m := New(auth, "")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.Registering() {
		t.Fatal("ctrl+r should open the sign-up form")
	}

	m = typeText(m, "Ana")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "ana@example.com")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "secret")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "other")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "https://example.com/a.png")
	m, cmd := press(m, tea.KeyEnter)

	if cmd != nil || !errors.Is(m.Err(), domain.ErrPasswordMismatch) {
		t.Fatalf("expected mismatch error, got %v", m.Err())
	}
	if len(auth.registered) != 0 {
		t.Fatal("no request expected")
	}
}

func TestRegister_SuccessReturnsToLoginWithEmail(t *testing.T) {
	auth := &stubAuth{}
	m := New(auth, "")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	for _, v := range []string{"Ana", "ana@example.com", "secret", "secret", "https://example.com/a.png"} {
		m = typeText(m, v)
		if m.focus < len(m.fields())-1 {
			m, _ = press(m, tea.KeyEnter)
		}
	}
	m, cmd := press(m, tea.KeyEnter)
	m, _ = m.Update(resultOf(t, cmd))

	if m.Registering() {
		t.Fatal("expected login form after registering")
	}
	if m.value(fieldEmail) != "ana@example.com" {
		t.Fatalf("expected email kept, got %q", m.value(fieldEmail))
	}
	if m.fields()[m.focus] != fieldPassword {
		t.Fatal("expected focus on password")
	}
	if len(auth.registered) != 1 || auth.registered[0].ProfilePictureURL != "https://example.com/a.png" {
		t.Fatalf("unexpected registration: %+v", auth.registered)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Account created") {
		t.Fatal("expected confirmation text")
	}
}

func TestRegister_EscReturnsToLogin(t *testing.T) {
	m := New(&stubAuth{}, "")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = press(m, tea.KeyEsc)
	if m.Registering() {
		t.Fatal("esc should return to login")
	}
}

func TestView_ShowsInfo(t *testing.T) {
	m := New(&stubAuth{}, "Session expired. Please log in again.")
	if !strings.Contains(ansi.Strip(m.View()), "Session expired") {
		t.Fatal("expected info line")
	}
}
