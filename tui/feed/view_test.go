package feed

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/bizfeed/tui/virtual"
)

func TestViewFitsTerminalHeight(t *testing.T) {
	m := loadedModel(t, makePosts(30), 15)
	view := m.View()
	if got := lipgloss.Height(view); got > 40 {
		t.Fatalf("view is %d lines, taller than the 40-line terminal", got)
	}
	if !strings.Contains(view, "Bizfeed") {
		t.Fatalf("expected app title in view")
	}
	if !strings.Contains(view, "15 of 15 posts") && !strings.Contains(view, "15 of 30 posts") {
		t.Fatalf("expected paging status in view, got:\n%s", view)
	}
}

func TestViewShowsSourceLabel(t *testing.T) {
	m := newTestModel(Deps{Source: pageSource{}, SourceLabel: "sqlite"})
	if !strings.Contains(m.View(), "sqlite") {
		t.Fatalf("expected source label in header")
	}
}

func TestViewLoading(t *testing.T) {
	m := newTestModel(Deps{Source: pageSource{}})
	if !strings.Contains(m.View(), "Loading posts...") {
		t.Fatalf("expected loading state before the first page")
	}
}

func TestTruncateCaption(t *testing.T) {
	short := "Open late tonight."
	if got, toggles := truncateCaption(short, false); got != short || toggles {
		t.Fatalf("short caption should pass through, got %q %v", got, toggles)
	}

	long := strings.Repeat("a", readMoreThreshold+20)
	got, toggles := truncateCaption(long, false)
	if !toggles || !strings.HasSuffix(got, "…") || len([]rune(got)) != readMoreThreshold+1 {
		t.Fatalf("expected truncated caption, got %d runes", len([]rune(got)))
	}
	if got, toggles := truncateCaption(long, true); got != long || !toggles {
		t.Fatalf("expanded caption should be whole")
	}
}

func TestRenderPostRowMarksCursorAndLikes(t *testing.T) {
	m := loadedModel(t, makePosts(2), 15)
	m = press(t, m, "l")
	out := m.renderRow(Row{Kind: PostRow, Post: m.Posts()[0]})
	if !strings.Contains(out, "♥ 11") {
		t.Fatalf("expected liked heart and count, got:\n%s", out)
	}
	if !strings.Contains(out, "Owner p1") || !strings.Contains(out, "1 hour ago") {
		t.Fatalf("expected author and relative time, got:\n%s", out)
	}
	other := m.renderRow(Row{Kind: PostRow, Post: m.Posts()[1]})
	if !strings.Contains(other, "♡ 10") {
		t.Fatalf("expected unliked heart, got:\n%s", other)
	}
}

func TestPaintWindow(t *testing.T) {
	items := []virtual.Item{
		{Index: 0, Key: "a", Start: 0, Size: 2},
		{Index: 1, Key: "b", Start: 3, Size: 3},
	}
	content := map[string]string{"a": "a1\na2", "b": "b1\nb2\nb3"}
	lines := paintWindow(items, 1, 4, func(it virtual.Item) string { return content[it.Key] })
	want := []string{"a2", "", "b1", "b2"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
