package feed

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/bizfeed/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.posts = nil
		m.seen = make(map[string]bool, len(msg.Page.Posts))
		m.appendPage(msg.Page)
		m.visibleCount = min(m.pageSize, m.total)
		m.loading = false
		m.loadingMore = false
		m.err = nil
		m.pageErr = nil
		m.notice = ""
		m.focusID = ""
		m.list.ScrollTo(0)
		m.cursorID = ""
		if len(m.posts) > 0 {
			m.cursorID = m.posts[0].ID
		}
		m.log.Debug("feed loaded",
			zap.Int("posts", len(m.posts)),
			zap.Int("total", m.total))
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.log.Warn("feed load failed", zap.Error(msg.Err))
		return m, nil

	case PageLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loadingMore = false
		m.pageErr = nil
		added := m.appendPage(msg.Page)
		m.visibleCount = min(m.visibleCount, m.total)
		m.log.Debug("feed page loaded",
			zap.Int("offset", msg.Page.Offset),
			zap.Int("added", added),
			zap.Int("total", m.total))
		if m.visibleCount > len(m.posts) {
			// Duplicates left the revealed count ahead of the loaded posts.
			m.loadingMore = true
			m.reqSeq++
			return m, m.fetchNextPage(m.reqSeq, m.nextOffset)
		}
		return m, nil

	case PageErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loadingMore = false
		m.pageErr = msg.Err
		// Shrink back to what is loaded so the next scroll retries.
		m.visibleCount = min(m.visibleCount, len(m.posts))
		m.log.Warn("feed page failed", zap.Error(msg.Err))
		return m, nil
	}
	return m, nil
}

// appendPage merges a page into the loaded posts, skipping ids already
// present, and returns how many posts were added.
func (m *Model) appendPage(page domain.Page) int {
	added := 0
	for _, p := range page.Posts {
		if m.seen[p.ID] {
			continue
		}
		m.seen[p.ID] = true
		m.posts = append(m.posts, p)
		added++
	}
	m.nextOffset = page.Offset + len(page.Posts)
	m.total = max(page.Total, len(m.posts))
	if len(page.Posts) == 0 || !page.HasMore() {
		// The source is exhausted; nothing beyond what is loaded.
		m.total = len(m.posts)
	}
	return added
}

// maybeLoadMore reveals another page when the viewport is near the end of
// the list. It reports whether the visible count grew and returns the fetch
// needed to back it, if any.
func (m *Model) maybeLoadMore() (bool, tea.Cmd) {
	if m.focusID != "" || m.loading || m.loadingMore || len(m.posts) == 0 {
		return false, nil
	}
	if !m.list.NearEnd(nearEndThreshold) {
		return false, nil
	}
	if m.visibleCount > len(m.posts) {
		// Revealed but not yet loaded, e.g. after a page of duplicates.
		m.loadingMore = true
		m.reqSeq++
		return false, m.fetchNextPage(m.reqSeq, m.nextOffset)
	}
	if m.visibleCount >= m.total {
		return false, nil
	}
	m.visibleCount = min(m.visibleCount+m.pageSize, m.total)
	if len(m.posts) >= m.visibleCount {
		return true, nil
	}
	m.loadingMore = true
	m.reqSeq++
	return true, m.fetchNextPage(m.reqSeq, m.nextOffset)
}
