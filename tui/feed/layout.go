package feed

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/bizfeed/tui/virtual"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxCardWidth  = 84
)

func (m Model) termSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m Model) viewportHeight() int {
	_, h := m.termSize()
	chrome := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderStatusLine()) + lipgloss.Height(m.helpView())
	return max(h-chrome, 4)
}

// cardWidth is the outer width of a post card, borders included.
func (m Model) cardWidth() int {
	w, _ := m.termSize()
	return max(min(w-2, maxCardWidth), 24)
}

// syncLayout rebuilds the rows, hands them to the virtualizer and measures
// the rows in the window until their heights settle.
func (m *Model) syncLayout(anchor anchorMode) {
	m.rows = BuildRows(m.VisiblePosts(), m.open)
	keys := make([]string, len(m.rows))
	for i, r := range m.rows {
		keys[i] = r.Key()
	}
	rows := m.rows
	showImages := m.imagesEnabled()
	m.list.SetRows(keys, func(i int) int { return estimateRow(rows[i], showImages) })
	m.list.SetViewport(m.viewportHeight())

	for range maxLayoutPasses {
		m.applyAnchor(anchor)
		if !m.measureWindow() {
			return
		}
	}
	m.applyAnchor(anchor)
	m.measureWindow()
}

func (m *Model) applyAnchor(anchor anchorMode) {
	switch anchor {
	case anchorCursor:
		if i, ok := m.list.IndexOf(postKey(m.cursorID)); ok {
			m.list.EnsureVisible(i)
		}
	case anchorBottom:
		m.list.ScrollTo(m.list.MaxOffset())
	}
}

// measureWindow renders every row in the window, attaches an observer to
// rows that just entered it and records heights the observers report. Rows
// that left the window lose their observer. It reports whether any
// measurement changed.
func (m *Model) measureWindow() bool {
	items := m.list.Items()
	keys := make([]string, 0, len(items))
	rendered := make(map[string]string, len(items))
	changed := false
	for _, it := range items {
		if it.Index >= len(m.rows) {
			continue
		}
		out := m.renderRow(m.rows[it.Index])
		rendered[it.Key] = out
		keys = append(keys, it.Key)
		if !m.observers.Attached(it.Key) {
			m.observers.Attach(it.Key)
		}
		h := lipgloss.Height(out)
		if m.observers.Notify(it.Key, h) && m.list.Measure(it.Key, h) {
			changed = true
		}
	}
	m.observers.Retain(keys)
	m.rendered = rendered
	return changed
}

// remeasure drops the observer of key so the row is measured afresh on the
// next layout pass.
func (m *Model) remeasure(key string) {
	m.observers.Detach(key)
}

// paintWindow places the content of each item at its line position and
// returns exactly height lines.
func paintWindow(items []virtual.Item, offset, height int, content func(virtual.Item) string) []string {
	lines := make([]string, max(height, 0))
	for _, it := range items {
		if it.End() <= offset || it.Start >= offset+height {
			continue
		}
		for j, ln := range strings.Split(content(it), "\n") {
			if j >= it.Size {
				break
			}
			pos := it.Start + j - offset
			if pos < 0 {
				continue
			}
			if pos >= height {
				break
			}
			lines[pos] = ln
		}
	}
	return lines
}

// syncCursorToViewport moves the cursor onto the first row in view when a
// scroll left it outside the viewport.
func (m *Model) syncCursorToViewport() {
	first, last, ok := m.list.VisibleRange()
	if !ok {
		return
	}
	if i, ok := m.list.IndexOf(postKey(m.cursorID)); ok && i >= first && i <= last {
		return
	}
	if first < len(m.rows) {
		m.cursorID = m.rows[first].Post.ID
	}
}
