package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/bizfeed/tui/common"
	"github.com/CrestNiraj12/bizfeed/tui/virtual"
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	height := m.viewportHeight()
	switch {
	case m.loading && len(m.posts) == 0:
		b.WriteString(padLines(fmt.Sprintf("  %s Loading posts...", m.spinner.View()), height))
	case m.err != nil && len(m.posts) == 0:
		msg := common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n  Press r to retry."
		b.WriteString(padLines(msg, height))
	case len(m.rows) == 0:
		b.WriteString(padLines("  No posts yet.", height))
	default:
		lines := paintWindow(m.list.Items(), m.list.Offset(), height, func(it virtual.Item) string {
			return m.rendered[it.Key]
		})
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("Bizfeed")
	tagline := common.TaglineStyle.Render("<what local businesses are up to>")
	header := title + tagline
	if m.sourceLabel != "" {
		header += "  " + common.SourceStyle.Render(m.sourceLabel)
	}
	return header
}

func (m Model) renderStatusLine() string {
	var parts []string
	switch {
	case m.loadingMore:
		parts = append(parts, m.spinner.View()+" Loading more posts...")
	case m.loading && len(m.posts) > 0:
		parts = append(parts, m.spinner.View()+" Refreshing...")
	}
	if m.pageErr != nil {
		parts = append(parts, common.ErrorStyle.Render("Couldn't load more posts: "+m.pageErr.Error()))
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	if m.focusID != "" {
		parts = append(parts, "Focused post • esc: back to feed")
	} else if len(m.posts) > 0 {
		parts = append(parts, fmt.Sprintf("%d of %d posts", m.VisibleCount(), m.total))
	}
	line := "  " + strings.Join(parts, " • ")
	w, _ := m.termSize()
	return common.TimestampStyle.MaxWidth(w).Render(line)
}

func padLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:max(height, 1)], "\n")
}

// truncateCaption shortens captions over the read-more threshold unless
// expanded. The bool reports whether the caption is long enough to toggle.
func truncateCaption(caption string, expanded bool) (string, bool) {
	r := []rune(caption)
	if len(r) <= readMoreThreshold {
		return caption, false
	}
	if expanded {
		return caption, true
	}
	return strings.TrimRight(string(r[:readMoreThreshold]), " \n") + "…", true
}

func (m *Model) renderRow(r Row) string {
	if r.Kind == CommentsRow {
		return m.renderCommentsRow(r)
	}
	return m.renderPostRow(r)
}

func (m *Model) renderPostRow(r Row) string {
	p := r.Post
	cardWidth := m.cardWidth()
	inner := cardWidth - 4

	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(p.Author.Name))
	if ts := common.RelativeTime(p.CreatedAt, m.now()); ts != "" {
		b.WriteString(common.TimestampStyle.Render(" · " + ts))
	}
	b.WriteString("\n")
	b.WriteString(common.HeadlineStyle.Render(p.Author.Headline))
	b.WriteString("\n\n")

	caption, toggles := truncateCaption(p.Caption, m.expanded[p.ID])
	b.WriteString(common.ContentStyle.Render(caption))
	if toggles {
		label := "Read more"
		if m.expanded[p.ID] {
			label = "Show less"
		}
		b.WriteString(" " + common.LinkStyle.Render(label))
	}

	if m.imagesEnabled() && p.HasImage() {
		b.WriteString("\n\n")
		b.WriteString(m.renderImage(p.ImageURL))
	}

	likes, liked := m.Likes(p.ID)
	heart := "♡"
	likeText := fmt.Sprintf("%s %s", heart, common.FormatCount(likes))
	if liked {
		likeText = common.LikedStyle.Render(fmt.Sprintf("♥ %s", common.FormatCount(likes)))
	}
	n := len(m.Comments(p.ID))
	commentsText := fmt.Sprintf("%d comments", n)
	if n == 1 {
		commentsText = "1 comment"
	}
	if m.open[p.ID] {
		commentsText += " ▾"
	}
	b.WriteString("\n\n")
	b.WriteString(common.TimestampStyle.Render(likeText + "   " + commentsText))

	style := common.UnselectedStyle
	if p.ID == m.cursorID {
		style = common.SelectedStyle
	}
	return style.Width(cardWidth - 2).Render(lipgloss.NewStyle().Width(inner).Render(b.String()))
}

func (m *Model) renderImage(url string) string {
	w, h := m.previewSize()
	if preview, ok := m.previews[previewKey(url, w, h)]; ok {
		return preview
	}
	return lipgloss.NewStyle().
		Width(w*2).
		Height(h).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color("#5B6078")).
		Render("loading image…")
}
