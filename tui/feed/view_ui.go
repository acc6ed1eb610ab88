package feed

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/CrestNiraj12/bizfeed/tui/common"
)

func (m Model) helpView() string {
	var bindings []key.Binding
	switch {
	case m.showAllHints:
		bindings = m.keys.HintBindings()
	case m.focusID != "":
		bindings = []key.Binding{m.keys.Down, m.keys.ToggleComments, m.keys.Comment, m.keys.Back, m.keys.ToggleHints}
	case len(m.posts) > 0:
		bindings = []key.Binding{m.keys.Down, m.keys.Like, m.keys.ToggleComments, m.keys.Focus, m.keys.Quit, m.keys.ToggleHints}
	default:
		bindings = []key.Binding{m.keys.Refresh, m.keys.Quit}
	}

	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		items = append(items, common.HintKeyStyle.Render(h.Key)+common.HintDescStyle.Render(": "+h.Desc))
	}

	w, _ := m.termSize()
	return common.StatusBarStyle.
		Width(max(w-2, 16)).
		Render("  " + strings.Join(items, common.HintDescStyle.Render(" • ")))
}
