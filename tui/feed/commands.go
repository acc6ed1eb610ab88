package feed

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/bizfeed/app"
	"github.com/CrestNiraj12/bizfeed/domain"
)

func (m Model) fetchFirstPage(reqSeq int) tea.Cmd {
	source := m.source
	limit := m.pageSize
	return func() tea.Msg {
		if source == nil {
			return PostsErrorMsg{Err: fmt.Errorf("no post source configured"), ReqSeq: reqSeq}
		}
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		page, err := source.FetchPage(ctx, 0, limit)
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Page: page, ReqSeq: reqSeq}
	}
}

func (m Model) fetchNextPage(reqSeq, offset int) tea.Cmd {
	source := m.source
	limit := m.pageSize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		page, err := source.FetchPage(ctx, offset, limit)
		if err != nil {
			return PageErrorMsg{Err: err, ReqSeq: reqSeq}
		}
		return PageLoadedMsg{Page: page, ReqSeq: reqSeq}
	}
}

func (m Model) fetchPost(id string) tea.Cmd {
	source := m.source
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		p, err := source.FetchPost(ctx, id)
		if err != nil {
			return PostRefreshedMsg{Post: domain.Post{ID: id}, Err: err}
		}
		return PostRefreshedMsg{Post: p}
	}
}

func loadImage(images app.ImageLoader, key, url string, w, h int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		preview, err := images.Load(ctx, url, w, h)
		return ImageLoadedMsg{Key: key, Preview: preview, Err: err}
	}
}

func composeComment(id, author string, inline bool) tea.Cmd {
	return func() tea.Msg {
		return ComposeCommentMsg{PostID: id, Author: author, UseInline: inline}
	}
}

func emitPrefs(showImages bool) tea.Cmd {
	return func() tea.Msg {
		return PrefsChangedMsg{ShowImages: showImages}
	}
}
