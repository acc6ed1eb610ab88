package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/tui/common"
	"github.com/CrestNiraj12/bizfeed/tui/virtual"
)

// commentPanelWidth is the content width of a comment panel; the panel sits
// under its card with a left margin and rule.
func (m Model) commentPanelWidth() int {
	return max(m.cardWidth()-4, 16)
}

func (m *Model) renderCommentsRow(r Row) string {
	id := r.Post.ID
	comments := m.Comments(id)
	width := m.commentPanelWidth()

	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(fmt.Sprintf("Comments (%d)", len(comments))))
	b.WriteString("\n")
	if len(comments) == 0 {
		b.WriteString(common.TimestampStyle.Render("No comments yet. Be the first to comment!"))
	} else {
		b.WriteString(m.renderCommentWindow(id, comments, width-2))
	}
	b.WriteString("\n")
	b.WriteString(common.HintDescStyle.Render("c: comment • C: $EDITOR • J/K: scroll • o: close"))
	return common.CommentPanelStyle.Width(width).Render(b.String())
}

// renderCommentWindow paints the slice of comments that fits the panel. Each
// panel keeps its own virtualizer so long threads only render what is seen.
func (m *Model) renderCommentWindow(id string, comments []domain.Comment, width int) string {
	list, ok := m.commentLists[id]
	if !ok {
		list = virtual.New(virtual.Options{Overscan: commentOverscan, Gap: 1})
	}
	keys := make([]string, len(comments))
	for i, c := range comments {
		keys[i] = c.ID
	}
	list.SetRows(keys, func(int) int { return commentEstimate })

	panel := commentPanelFeedLines
	if m.focusID != "" {
		panel = commentPanelFocusLines
	}
	list.SetViewport(panel)

	follow := m.panelFollow[id]
	rendered := make(map[string]string)
	for range 2 {
		if follow {
			list.ScrollTo(list.MaxOffset())
		}
		changed := false
		for _, it := range list.Items() {
			out, ok := rendered[it.Key]
			if !ok {
				out = m.renderComment(comments[it.Index], width)
				rendered[it.Key] = out
			}
			if list.Measure(it.Key, lipgloss.Height(out)) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	if follow {
		list.ScrollTo(list.MaxOffset())
		delete(m.panelFollow, id)
	}
	m.commentLists[id] = list

	height := min(panel, list.TotalSize())
	lines := paintWindow(list.Items(), list.Offset(), height, func(it virtual.Item) string {
		if out, ok := rendered[it.Key]; ok {
			return out
		}
		return m.renderComment(comments[it.Index], width)
	})
	return strings.Join(lines, "\n")
}

func (m Model) renderComment(c domain.Comment, width int) string {
	head := common.AuthorStyle.Render(c.Author.Name)
	if ts := common.RelativeTime(c.CreatedAt, m.now()); ts != "" {
		head += common.TimestampStyle.Render(" · " + ts)
	}
	body := common.ContentStyle.Width(width).Render(c.Content)
	return head + "\n" + body
}
