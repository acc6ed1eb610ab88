package feed

import (
	"errors"
	"slices"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/bizfeed/domain"
)

func (m *Model) toggleLike(id string) {
	if _, ok := m.findPost(id); !ok {
		return
	}
	if m.liked[id] {
		delete(m.liked, id)
	} else {
		m.liked[id] = true
	}
}

func (m *Model) toggleExpanded(id string) {
	p, ok := m.findPost(id)
	if !ok || utf8.RuneCountInString(p.Caption) <= readMoreThreshold {
		return
	}
	m.expanded[id] = !m.expanded[id]
	m.remeasure(postKey(id))
	m.anchor = anchorCursor
}

// toggleComments opens or closes the comment panel of id. The post row is
// measured again because its panel changes what follows it.
func (m *Model) toggleComments(id string) {
	if _, ok := m.findPost(id); !ok {
		return
	}
	if m.open[id] {
		delete(m.open, id)
		delete(m.commentLists, id)
		delete(m.panelFollow, id)
	} else {
		m.open[id] = true
	}
	m.remeasure(postKey(id))
	m.remeasure(Row{Kind: CommentsRow, Post: domain.Post{ID: id}}.Key())
}

func (m *Model) scrollComments(id string, delta int) {
	list, ok := m.commentLists[id]
	if !ok || !m.open[id] {
		return
	}
	list.ScrollBy(delta)
	m.commentLists[id] = list
}

// enterFocus shows only post id, plus its comment panel when open. It
// reports whether focus changed.
func (m *Model) enterFocus(id string) bool {
	if m.focusID != "" {
		return false
	}
	if _, ok := m.findPost(id); !ok {
		return false
	}
	m.focusID = id
	m.cursorID = id
	m.list.ScrollTo(0)
	return true
}

// handlePostRefreshed swaps in the source's current copy of a post. A
// failed refresh keeps the copy already shown.
func (m Model) handlePostRefreshed(msg PostRefreshedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Debug("post refresh failed", zap.String("post", msg.Post.ID), zap.Error(msg.Err))
		return m, nil
	}
	for i, p := range m.posts {
		if p.ID == msg.Post.ID {
			m.posts = slices.Clone(m.posts)
			m.posts[i] = msg.Post
			m.remeasure(postKey(p.ID))
			break
		}
	}
	return m, nil
}

// leaveFocus restores the paged feed scrolled to the top.
func (m *Model) leaveFocus() {
	if m.focusID == "" {
		return
	}
	m.focusID = ""
	m.list.ScrollTo(0)
	if posts := m.VisiblePosts(); len(posts) > 0 {
		m.cursorID = posts[0].ID
	}
}

func (m Model) handleAddComment(msg AddCommentMsg) (Model, tea.Cmd) {
	if _, ok := m.findPost(msg.PostID); !ok {
		return m, nil
	}
	c, err := domain.NewComment(msg.Content, m.now())
	if errors.Is(err, domain.ErrEmptyComment) {
		return m, nil
	}
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.comments[msg.PostID] = append(slices.Clone(m.Comments(msg.PostID)), c)
	m.open[msg.PostID] = true
	m.panelFollow[msg.PostID] = true
	m.cursorID = msg.PostID
	m.anchor = anchorCursor
	m.notice = "Comment added"
	m.log.Debug("comment added", zap.String("post", msg.PostID), zap.String("comment", c.ID))
	return m, nil
}

// SetNotice shows a one-line message under the feed.
func (m *Model) SetNotice(s string) {
	m.notice = s
}
