package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/infra/config"
	"github.com/CrestNiraj12/bizfeed/infra/memory"
	"github.com/CrestNiraj12/bizfeed/tui/compose"
	"github.com/CrestNiraj12/bizfeed/tui/feed"
)

func loadedApp(t *testing.T, deps Deps) App {
	t.Helper()
	posts := domain.SamplePosts(4, time.Now())
	if deps.Source == nil {
		deps.Source = memory.New(posts)
	}
	a := NewApp(deps)
	a = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
	return update(t, a, feed.PostsLoadedMsg{
		Page: domain.Page{Posts: posts, Offset: 0, Total: len(posts)},
	})
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	out, ok := m.(App)
	if !ok {
		t.Fatalf("expected App, got %T", m)
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestQuitFromFeed(t *testing.T) {
	a := loadedApp(t, Deps{})
	_, cmd := a.Update(runes("q"))
	if !isQuit(cmd) {
		t.Fatalf("expected q to quit from the feed")
	}
}

func TestQuitIgnoredInFocus(t *testing.T) {
	a := loadedApp(t, Deps{})
	a = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.feed.Focused() {
		t.Fatalf("expected focus mode")
	}
	_, cmd := a.Update(runes("q"))
	if isQuit(cmd) {
		t.Fatalf("q must not quit while a post is focused")
	}
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Fatalf("ctrl+c should always quit")
	}
}

func TestInlineCommentFlow(t *testing.T) {
	a := loadedApp(t, Deps{})
	id := a.feed.Posts()[0].ID

	a = update(t, a, feed.ComposeCommentMsg{PostID: id, Author: "Sarah Johnson", UseInline: true})
	if a.active != composeView {
		t.Fatalf("expected compose view")
	}
	if !strings.Contains(a.View(), "Comment on") {
		t.Fatalf("expected composer in view")
	}

	a = update(t, a, compose.DoneMsg{PostID: id, Content: "See you Saturday!"})
	if a.active != feedView {
		t.Fatalf("expected feed view after submit")
	}
	comments := a.feed.Comments(id)
	if len(comments) != 1 || comments[0].Content != "See you Saturday!" {
		t.Fatalf("expected the new comment on %s, got %+v", id, comments)
	}
	if !a.feed.IsOpen(id) {
		t.Fatalf("expected the comment panel to open")
	}
}

func TestComposeCancelAndError(t *testing.T) {
	a := loadedApp(t, Deps{})
	id := a.feed.Posts()[0].ID

	a = update(t, a, feed.ComposeCommentMsg{PostID: id, UseInline: true})
	a = update(t, a, compose.DoneMsg{PostID: id})
	if len(a.feed.Comments(id)) != 0 || !strings.Contains(a.View(), "Cancelled.") {
		t.Fatalf("expected cancel to add nothing and say so")
	}

	a = update(t, a, feed.ComposeCommentMsg{PostID: id})
	a = update(t, a, compose.DoneMsg{PostID: id, Err: errors.New("editor crashed")})
	if !strings.Contains(a.View(), "editor crashed") {
		t.Fatalf("expected editor error in view")
	}
}

func TestFeedResultsReachFeedWhileComposing(t *testing.T) {
	a := NewApp(Deps{Source: memory.New(nil)})
	a = update(t, a, feed.ComposeCommentMsg{PostID: "x", UseInline: true})
	a = update(t, a, feed.PostsLoadedMsg{
		Page: domain.Page{Posts: domain.SamplePosts(2, time.Now()), Total: 2},
	})
	if a.feed.Loading() || len(a.feed.Posts()) != 2 {
		t.Fatalf("expected feed to load while composing")
	}
}

func TestPrefsSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_state.json")
	if err := config.SaveUIState(path, config.UIState{Source: "sqlite"}); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	a := loadedApp(t, Deps{StatePath: path})

	_, cmd := a.Update(feed.PrefsChangedMsg{ShowImages: false})
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	if saved, ok := cmd().(prefsSavedMsg); !ok || saved.err != nil {
		t.Fatalf("expected successful save, got %#v", saved)
	}

	st, err := config.LoadUIState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if !st.HideImages || st.Source != "sqlite" {
		t.Fatalf("expected hide_images set and source kept, got %+v", st)
	}
}

func TestPrefsWithoutStatePath(t *testing.T) {
	a := loadedApp(t, Deps{})
	if _, cmd := a.Update(feed.PrefsChangedMsg{ShowImages: true}); cmd != nil {
		t.Fatalf("expected no save without a state path")
	}
}
