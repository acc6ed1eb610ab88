package compose

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("Bizfeed"))
		if m.author != "" {
			b.WriteString("  Comment on " + common.AuthorStyle.Render(m.author))
		}
		b.WriteString("\n\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")

		if m.status != "" {
			b.WriteString(common.StatusBarStyle.Render(m.status))
		} else {
			b.WriteString(common.StatusBarStyle.Render(
				fmt.Sprintf("  enter: post • alt+enter: newline • esc: cancel • %d/%d chars",
					utf8.RuneCountInString(m.textarea.Value()), domain.CommentCharLimit),
			))
		}

		return b.String()
	}

	return ""
}
