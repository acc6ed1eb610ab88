package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/infra/memory"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func makePost(id string, caption string) domain.Post {
	return domain.Post{
		ID: id,
		Author: domain.Author{
			Name:     "Owner " + id,
			Headline: "Owner at Shop " + id,
		},
		Caption:   caption,
		CreatedAt: testNow.Add(-time.Hour),
		Likes:     10,
	}
}

func makePosts(n int) []domain.Post {
	posts := make([]domain.Post, n)
	for i := range posts {
		posts[i] = makePost(fmt.Sprintf("p%d", i+1), "Fresh bread every morning.")
	}
	return posts
}

type failingSource struct{ err error }

func (s failingSource) FetchPage(context.Context, int, int) (domain.Page, error) {
	return domain.Page{}, s.err
}

func (s failingSource) FetchPost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, s.err
}

// pageSource serves fixed pages by offset, for tests that need pages a
// well-behaved source would never produce.
type pageSource struct {
	pages map[int]domain.Page
}

func (s pageSource) FetchPage(_ context.Context, offset, _ int) (domain.Page, error) {
	p, ok := s.pages[offset]
	if !ok {
		return domain.Page{}, errors.New("no such page")
	}
	return p, nil
}

func (s pageSource) FetchPost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, domain.ErrPostNotFound
}

type stubImages struct {
	err   error
	calls []string
}

func (s *stubImages) Load(_ context.Context, url string, w, h int) (string, error) {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return "", s.err
	}
	return strings.TrimSuffix(strings.Repeat("img\n", h), "\n"), nil
}

func (s *stubImages) Placeholder(w, h int) string {
	return strings.TrimSuffix(strings.Repeat("placeholder\n", h), "\n")
}

func newTestModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = func() time.Time { return testNow }
	}
	m := New(deps)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// loadedModel returns a model with the first page of posts applied.
func loadedModel(t *testing.T, posts []domain.Post, pageSize int) Model {
	t.Helper()
	m := newTestModel(Deps{Source: memory.New(posts), PageSize: pageSize})
	return drain(t, m, m.Init())
}

// drain runs cmd and every command that follows from it synchronously,
// feeding each message back into the model. Spinner ticks are dropped.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		msg = tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+e":
		msg = tea.KeyMsg{Type: tea.KeyCtrlE}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}
