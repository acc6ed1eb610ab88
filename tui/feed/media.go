package feed

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// previewSize returns the preview size in cells for the current width. Each
// cell is two columns wide.
func (m Model) previewSize() (int, int) {
	inner := m.cardWidth() - 4
	return max(min(inner/2, 32), 4), imagePreviewLines
}

func previewKey(url string, w, h int) string {
	return fmt.Sprintf("%s|%dx%d", url, w, h)
}

// ensureImagesCmd starts loading previews for windowed post rows only.
func (m *Model) ensureImagesCmd() tea.Cmd {
	if !m.imagesEnabled() {
		return nil
	}
	w, h := m.previewSize()
	var cmds []tea.Cmd
	for _, it := range m.list.Items() {
		if it.Index >= len(m.rows) {
			continue
		}
		row := m.rows[it.Index]
		if row.Kind != PostRow || !row.Post.HasImage() {
			continue
		}
		k := previewKey(row.Post.ImageURL, w, h)
		if _, ok := m.previews[k]; ok || m.imageLoading[k] {
			continue
		}
		m.imageLoading[k] = true
		cmds = append(cmds, loadImage(m.images, k, row.Post.ImageURL, w, h))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) handleImageMsg(msg ImageLoadedMsg) (Model, tea.Cmd) {
	delete(m.imageLoading, msg.Key)
	if msg.Err != nil || msg.Preview == "" {
		// Failed images fall back to the placeholder without telling the user.
		m.log.Debug("image preview failed", zap.String("key", msg.Key), zap.Error(msg.Err))
		if m.images != nil {
			w, h := m.previewSize()
			m.previews[msg.Key] = m.images.Placeholder(w, h)
		}
		return m, nil
	}
	m.previews[msg.Key] = msg.Preview
	return m, nil
}
