package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/socialfeed/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		heading := "New post"
		if m.isEdit() {
			heading = fmt.Sprintf("Edit post #%d", m.original.ID)
		}
		b.WriteString(common.SectionStyle.Render(heading) + "\n\n")

		b.WriteString("  " + m.label(fieldTitle, "Title") + "\n  " + m.title.View() + "\n\n")
		b.WriteString("  " + m.label(fieldContent, "Content") + "\n")
		b.WriteString(m.body.View() + "\n\n")
		b.WriteString("  " + m.label(fieldImage, "Image") + "\n  " + m.imagePath.View() + "\n")

		if m.isEdit() && m.original.ImageURL != "" {
			current := ansi.Truncate(m.original.ImageURL, 60, "...")
			if m.dropImage {
				b.WriteString("  " + common.MetadataStyle.Render("Current image will be removed: "+current) + "\n")
			} else {
				b.WriteString("  " + common.MetadataStyle.Render("Current image: "+current) + "\n")
			}
		}
		b.WriteString("\n")

		if m.err != nil {
			b.WriteString(common.ErrorStyle.Render("  "+common.ErrorText(m.err)) + "\n\n")
		}

		hint := fmt.Sprintf("  ctrl+d: post • tab: next field • esc: cancel • %d/%d chars",
			len([]rune(m.body.Value())), maxContentLen)
		if m.isEdit() && m.original.ImageURL != "" {
			hint += " • ctrl+x: toggle image removal"
		}
		b.WriteString(common.StatusBarStyle.Render(hint))
		return b.String()
	}

	return ""
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return common.FocusedLabelStyle.Render(text)
	}
	return common.LabelStyle.Render(text)
}
