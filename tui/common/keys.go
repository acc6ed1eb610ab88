package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit           key.Binding
	ForceQuit      key.Binding
	Refresh        key.Binding
	Up             key.Binding
	Down           key.Binding
	LineDown       key.Binding // ctrl+e: scroll one line
	LineUp         key.Binding // ctrl+y
	HalfPageDown   key.Binding
	HalfPageUp     key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Like           key.Binding
	ReadMore       key.Binding
	ToggleComments key.Binding
	Focus          key.Binding // enter: show only the selected post
	Back           key.Binding
	CommentsDown   key.Binding // J: scroll the comment panel
	CommentsUp     key.Binding // K
	Comment        key.Binding // c: comment inline
	CommentEditor  key.Binding // C: comment via $EDITOR
	ToggleImages   key.Binding
	ToggleHints    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "scroll down"),
		),
		LineUp: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		ReadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "read more"),
		),
		ToggleComments: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "comments"),
		),
		Focus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "focus"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		CommentsDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J/K", "scroll comments"),
		),
		CommentsUp: key.NewBinding(
			key.WithKeys("K"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		CommentEditor: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment ($EDITOR)"),
		),
		ToggleImages: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "images"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "hints"),
		),
	}
}

// HintBindings lists the bindings shown in the feed's key hint line.
func (k KeyMap) HintBindings() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.Like, k.ReadMore, k.ToggleComments, k.CommentsDown,
		k.Focus, k.Back, k.Comment, k.CommentEditor, k.ToggleImages,
		k.Refresh, k.Quit,
	}
}
