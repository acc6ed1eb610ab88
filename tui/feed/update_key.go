package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showAllHints = !m.showAllHints
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Down):
		m.scrolled = true
		if m.focusID != "" {
			m.list.ScrollBy(1)
			return m, nil
		}
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.scrolled = true
		if m.focusID != "" {
			m.list.ScrollBy(-1)
			return m, nil
		}
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.LineDown):
		m.scrollLines(1)
		return m, nil

	case key.Matches(msg, m.keys.LineUp):
		m.scrollLines(-1)
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.scrollLines(max(m.list.Viewport()/2, 1))
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.scrollLines(-max(m.list.Viewport()/2, 1))
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.scrolled = true
		m.list.ScrollTo(0)
		if posts := m.VisiblePosts(); len(posts) > 0 {
			m.cursorID = posts[0].ID
		}
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.scrolled = true
		if posts := m.VisiblePosts(); len(posts) > 0 {
			m.cursorID = posts[len(posts)-1].ID
		}
		m.anchor = anchorBottom
		return m, nil

	case key.Matches(msg, m.keys.Like):
		m.toggleLike(m.cursorID)
		return m, nil

	case key.Matches(msg, m.keys.ReadMore):
		m.toggleExpanded(m.cursorID)
		return m, nil

	case key.Matches(msg, m.keys.ToggleComments):
		m.toggleComments(m.cursorID)
		return m, nil

	case key.Matches(msg, m.keys.CommentsDown):
		m.scrollComments(m.cursorID, commentEstimate)
		return m, nil

	case key.Matches(msg, m.keys.CommentsUp):
		m.scrollComments(m.cursorID, -commentEstimate)
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if !m.enterFocus(m.cursorID) {
			return m, nil
		}
		return m, m.fetchPost(m.focusID)

	case key.Matches(msg, m.keys.Back):
		m.leaveFocus()
		return m, nil

	case key.Matches(msg, m.keys.Comment), key.Matches(msg, m.keys.CommentEditor):
		p, ok := m.findPost(m.cursorID)
		if !ok {
			return m, nil
		}
		return m, composeComment(p.ID, p.Author.Name, key.Matches(msg, m.keys.Comment))

	case key.Matches(msg, m.keys.ToggleImages):
		if m.images == nil {
			m.notice = "Image previews are unavailable"
			return m, nil
		}
		m.showImages = !m.showImages
		return m, emitPrefs(m.showImages)
	}

	return m, nil
}

// moveCursor moves the cursor delta posts down (or up) the visible rows
// and keeps it in view.
func (m *Model) moveCursor(delta int) {
	posts := m.VisiblePosts()
	if len(posts) == 0 {
		return
	}
	pos := 0
	for i, p := range posts {
		if p.ID == m.cursorID {
			pos = i
			break
		}
	}
	pos = min(max(pos+delta, 0), len(posts)-1)
	m.cursorID = posts[pos].ID
	m.anchor = anchorCursor
}

func (m *Model) scrollLines(delta int) {
	m.scrolled = true
	m.list.ScrollBy(delta)
	if m.focusID == "" {
		m.syncCursorToViewport()
	}
}
