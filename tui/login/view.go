package login

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/socialfeed/domain"
	"github.com/CrestNiraj12/socialfeed/tui/common"
)

var fieldLabels = [fieldCount]string{
	fieldName:     "Name",
	fieldEmail:    "Email",
	fieldPassword: "Password",
	fieldConfirm:  "Confirm password",
	fieldPicture:  "Picture URL",
}

// View renders the active form.
func (m Model) View() string {
	var b strings.Builder

	title := "Log in"
	if m.mode == registerMode {
		title = "Create account"
	}
	b.WriteString(common.SectionStyle.Render(title) + "\n\n")

	if m.info != "" {
		b.WriteString(common.SuccessStyle.Render("  "+m.info) + "\n\n")
	}

	for pos, field := range m.fields() {
		label := common.LabelStyle
		if pos == m.focus {
			label = common.FocusedLabelStyle
		}
		b.WriteString(fmt.Sprintf("  %s\n  %s\n\n", label.Render(fieldLabels[field]), m.inputs[field].View()))
	}

	switch {
	case m.submitting:
		verb := "Logging in"
		if m.mode == registerMode {
			verb = "Creating account"
		}
		b.WriteString(fmt.Sprintf("  %s %s...\n", m.spinner.View(), verb))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("  "+errorText(m.err)) + "\n")
	}

	hint := "enter: next/submit • tab: next field • ctrl+r: create account • ctrl+c: quit"
	if m.mode == registerMode {
		hint = "enter: next/submit • tab: next field • esc: back to login • ctrl+c: quit"
	}
	b.WriteString("\n" + common.StatusBarStyle.Render("  "+hint))
	return b.String()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Invalid email or password."
	default:
		msg := err.Error()
		if msg == "" {
			return "Something went wrong."
		}
		return strings.ToUpper(msg[:1]) + msg[1:]
	}
}
