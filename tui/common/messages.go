package common

import tea "github.com/charmbracelet/bubbletea"

// NoticeMsg asks the root view to show a one-line status message.
type NoticeMsg struct {
	Text  string
	IsErr bool
}

// Notice returns a Cmd that delivers a NoticeMsg.
func Notice(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Text: text, IsErr: isErr} }
}

// UnauthorizedMsg reports that the server rejected the session with 401.
type UnauthorizedMsg struct{}
