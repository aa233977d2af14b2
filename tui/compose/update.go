package compose

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/socialfeed/domain"
)

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), EditID: m.original.ID})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err, EditID: m.original.ID})
		}

		if strings.TrimSpace(content) == "" || content == m.original.Content {
			return m, done(m.cancelled())
		}

		return m, done(m.submitted(m.editorDraft(content)))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(m.cancelled())

		case "tab":
			return m, m.focusField(m.focus + 1)

		case "shift+tab":
			return m, m.focusField(m.focus - 1)

		case "ctrl+x":
			if m.isEdit() && m.original.ImageURL != "" {
				m.dropImage = !m.dropImage
			}
			return m, nil

		case "ctrl+d":
			d, err := m.draft()
			if err != nil {
				m.err = err
				return m, nil
			}
			if m.unchanged(d) {
				return m, done(m.cancelled())
			}
			return m, done(m.submitted(d))
		}

		m.err = nil
		return m.updateFocused(msg)
	}

	if m.mode == inlineMode {
		return m.updateFocused(msg)
	}

	return m, nil
}

func (m Model) editorDraft(content string) domain.Draft {
	return domain.Draft{
		Title:    m.original.Title,
		Content:  content,
		ImageURL: m.original.ImageURL,
	}
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldImage:
		m.imagePath, cmd = m.imagePath.Update(msg)
	default:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}
