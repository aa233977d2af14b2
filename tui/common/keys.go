package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit       key.Binding
	Refresh    key.Binding // r: reload the feed, or retry after a failed page
	LoadMore   key.Binding // m: fetch the next page
	Like       key.Binding // l: toggle like
	Comment    key.Binding // c: open the comment box for the selected post
	Submit     key.Binding
	Cancel     key.Binding
	NewEditor  key.Binding // p: compose via $EDITOR
	NewInline  key.Binding // P: compose via inline form
	Edit       key.Binding // e: edit own post (buffer)
	EditInline key.Binding // E: edit own post (inline)
	SwitchView key.Binding // tab: feed / profile
	Logout     key.Binding
	Up         key.Binding
	Down       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "post ($EDITOR)"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "post (inline)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit (buffer)"),
		),
		EditInline: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit (inline)"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "feed/profile"),
		),
		Logout: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "logout"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}
