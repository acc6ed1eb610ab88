package compose

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubEditor struct {
	content string
	readErr error
	on      string
}

func (s *stubEditor) Cmd(_ string, on string) (*exec.Cmd, string, error) {
	s.on = on
	return exec.Command("true"), "/tmp/stub", nil
}

func (s *stubEditor) ReadContent(string) (string, error) {
	return s.content, s.readErr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func doneOf(t *testing.T, cmd tea.Cmd) DoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg")
	}
	return msg
}

func TestInline_SubmitTrimmedContent(t *testing.T) {
	m := NewInline("p1", "Sarah Johnson")
	m, _ = m.Update(runes("  great news  "))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := doneOf(t, cmd)
	if got.PostID != "p1" || got.Content != "great news" || got.Err != nil {
		t.Fatalf("unexpected done msg: %+v", got)
	}
}

func TestInline_BlankIsIgnored(t *testing.T) {
	m := NewInline("p1", "")
	m, _ = m.Update(runes("   "))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("blank comment must not submit")
	}
}

func TestInline_EscCancels(t *testing.T) {
	m := NewInline("p1", "")
	m, _ = m.Update(runes("draft"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := doneOf(t, cmd); got.Content != "" || got.PostID != "p1" {
		t.Fatalf("esc must cancel: %+v", got)
	}
}

func TestInline_ViewShowsCounter(t *testing.T) {
	m := NewInline("p1", "Sarah Johnson")
	m, _ = m.Update(runes("hey"))
	v := m.View()
	if !strings.Contains(v, "3/500 chars") || !strings.Contains(v, "Sarah Johnson") {
		t.Fatalf("unexpected view: %q", v)
	}
}

func TestEditor_FinishedReadsContent(t *testing.T) {
	ed := &stubEditor{content: "from vim"}
	m := NewEditor(ed, "p2", "Michael Chen")
	if m.Init() == nil {
		t.Fatalf("expected exec command")
	}
	if ed.on != "Michael Chen" {
		t.Fatalf("editor must be told which post: %q", ed.on)
	}

	_, cmd := m.Update(editorFinishedMsg{tmpPath: "/tmp/stub"})
	if got := doneOf(t, cmd); got.Content != "from vim" || got.PostID != "p2" {
		t.Fatalf("unexpected done msg: %+v", got)
	}

	_, cmd = m.Update(editorFinishedMsg{err: errors.New("exit 1")})
	if got := doneOf(t, cmd); got.Err == nil {
		t.Fatalf("expected editor error to propagate")
	}

	ed.readErr = errors.New("gone")
	_, cmd = m.Update(editorFinishedMsg{tmpPath: "/tmp/stub"})
	if got := doneOf(t, cmd); got.Err == nil {
		t.Fatalf("expected read error to propagate")
	}
}

func TestEditor_IgnoresKeys(t *testing.T) {
	m := NewEditor(&stubEditor{}, "p2", "")
	if _, cmd := m.Update(runes("x")); cmd != nil {
		t.Fatalf("editor mode must ignore keys")
	}
}
