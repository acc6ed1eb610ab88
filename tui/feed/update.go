package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.anchor = anchorCursor
	}

	switch msg := msg.(type) {
	case PostsLoadedMsg, PostsErrorMsg, PageLoadedMsg, PageErrorMsg:
		m, cmd = m.handleFeedLoadingMsg(msg)
	case PostRefreshedMsg:
		m, cmd = m.handlePostRefreshed(msg)
	case ImageLoadedMsg:
		m, cmd = m.handleImageMsg(msg)
	case AddCommentMsg:
		m, cmd = m.handleAddComment(msg)
	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)
	}

	// Every state change is followed by a layout pass that re-measures the
	// rows in the window. Paging only follows keys that moved the viewport.
	m.syncLayout(m.anchor)
	m.anchor = anchorNone
	var fetch tea.Cmd
	if m.scrolled {
		m.scrolled = false
		var grew bool
		grew, fetch = m.maybeLoadMore()
		if grew {
			m.syncLayout(anchorNone)
		}
	}
	images := m.ensureImagesCmd()
	return m, tea.Batch(cmd, fetch, images)
}
