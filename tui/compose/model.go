// Package compose captures the text of a new comment, either in an inline
// textarea or in the user's $EDITOR.
package compose

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// Editor prepares an external editor session. Implemented by
// infra/editor.EnvEditor.
type Editor interface {
	Cmd(content, commentingOn string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	PostID  string
	Content string // Empty if cancelled
	Err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	editor   Editor
	postID   string
	author   string // Author of the post being commented on
	status   string
	textarea textarea.Model // Only used in inline mode
}

// NewEditor creates a compose model that opens $EDITOR via tea.ExecProcess.
func NewEditor(ed Editor, postID, author string) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		postID: postID,
		author: author,
		status: "Opening editor...",
	}
}

// NewInline creates a compose model with an inline Bubble Tea textarea.
func NewInline(postID, author string) Model {
	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.CharLimit = domain.CommentCharLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(4)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		postID:   postID,
		author:   author,
		textarea: ta,
	}
}

// PostID returns the post the comment is for.
func (m Model) PostID() string {
	return m.postID
}

// SetWidth fits the inline textarea to the terminal.
func (m *Model) SetWidth(w int) {
	if m.mode == inlineMode && w > 8 {
		m.textarea.SetWidth(min(w-4, 96))
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.ExecProcess so
// Bubble Tea leaves raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	if m.editor == nil {
		return done(DoneMsg{PostID: m.postID, Err: fmt.Errorf("no editor configured")})
	}
	cmd, tmpPath, err := m.editor.Cmd("", m.author)
	if err != nil {
		return done(DoneMsg{PostID: m.postID, Err: fmt.Errorf("preparing editor: %w", err)})
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{PostID: m.postID, Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{PostID: m.postID, Err: err})
		}
		return m, done(DoneMsg{PostID: m.postID, Content: content})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{PostID: m.postID}) // Cancel.

		case "enter", "ctrl+d":
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				// Blank comments are ignored; keep the composer open.
				return m, nil
			}
			return m, done(DoneMsg{PostID: m.postID, Content: content})

		case "alt+enter":
			m.textarea.InsertString("\n")
			return m, nil
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
