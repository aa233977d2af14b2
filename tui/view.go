package tui

import (
	"strings"

	"github.com/CrestNiraj12/socialfeed/tui/common"
)

// View renders the title bar, the active sub-model and the status line.
func (a App) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("socialfeed")
	b.WriteString(title + "  " + common.SectionStyle.Render(a.sectionName()))
	if a.active != loginView {
		b.WriteString("  " + common.TaglineStyle.Render(a.whoami()))
	}
	b.WriteString("\n\n")

	switch a.active {
	case loginView:
		b.WriteString(a.login.View())
	case feedView:
		b.WriteString(a.feed.View())
	case profileView:
		b.WriteString(a.profile.View())
	case composeView:
		b.WriteString(a.compose.View())
	}

	if a.status != "" {
		style := common.SuccessStyle
		if a.statusErr {
			style = common.ErrorStyle
		}
		b.WriteString("\n" + style.Render(" "+a.status))
	}
	return b.String()
}

func (a App) sectionName() string {
	switch a.active {
	case loginView:
		return "Welcome"
	case profileView:
		return "Profile"
	case composeView:
		return "Compose"
	default:
		return "Feed"
	}
}

func (a App) whoami() string {
	c := a.deps.Session.Claims()
	if c.Name != "" {
		return c.Name
	}
	return c.Email
}
