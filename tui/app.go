package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/bizfeed/app"
	"github.com/CrestNiraj12/bizfeed/infra/config"
	"github.com/CrestNiraj12/bizfeed/tui/common"
	"github.com/CrestNiraj12/bizfeed/tui/compose"
	"github.com/CrestNiraj12/bizfeed/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Source      app.PostSource
	Images      app.ImageLoader // Optional
	Editor      compose.Editor
	Logger      *zap.Logger
	PageSize    int
	ShowImages  bool
	StatePath   string // UI preferences file; empty disables saving
	SourceLabel string
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

type prefsSavedMsg struct {
	err error
}

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps    Deps
	log     *zap.Logger
	active  activeView
	feed    feed.Model
	compose compose.Model
	keys    common.KeyMap
	width   int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return App{
		deps:   deps,
		log:    logger,
		active: feedView,
		feed: feed.New(feed.Deps{
			Source:      deps.Source,
			Images:      deps.Images,
			Logger:      logger,
			PageSize:    deps.PageSize,
			ShowImages:  deps.ShowImages,
			SourceLabel: deps.SourceLabel,
		}),
		keys: common.DefaultKeyMap(),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global key bindings, handled regardless of active view.
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == feedView && key.Matches(msg, a.keys.Quit) && !a.feed.Focused() {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.compose.SetWidth(msg.Width)
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd

	case feed.ComposeCommentMsg:
		a.active = composeView
		if msg.UseInline {
			a.compose = compose.NewInline(msg.PostID, msg.Author)
			a.compose.SetWidth(a.width)
		} else {
			a.compose = compose.NewEditor(a.deps.Editor, msg.PostID, msg.Author)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = feedView
		if msg.Err != nil {
			a.log.Warn("compose failed", zap.String("post", msg.PostID), zap.Error(msg.Err))
			a.feed.SetNotice("Error: " + msg.Err.Error())
			return a, nil
		}
		if msg.Content == "" {
			a.feed.SetNotice("Cancelled.")
			return a, nil
		}
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.AddCommentMsg{PostID: msg.PostID, Content: msg.Content})
		return a, cmd

	case feed.PrefsChangedMsg:
		return a, a.savePrefs(msg.ShowImages)

	case prefsSavedMsg:
		if msg.err != nil {
			a.log.Warn("saving ui state failed", zap.Error(msg.err))
			a.feed.SetNotice("Couldn't save preferences")
		}
		return a, nil

	// Feed results are delivered to the feed even while composing.
	case feed.PostsLoadedMsg, feed.PostsErrorMsg, feed.PageLoadedMsg, feed.PageErrorMsg,
		feed.PostRefreshedMsg, feed.ImageLoadedMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		return a, cmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case feedView:
		updated, cmd := a.feed.Update(msg)
		a.feed = updated
		return a, cmd
	case composeView:
		updated, cmd := a.compose.Update(msg)
		a.compose = updated
		return a, cmd
	}

	return a, nil
}

func (a App) savePrefs(showImages bool) tea.Cmd {
	path := a.deps.StatePath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		st, err := config.LoadUIState(path)
		if err != nil {
			// A corrupt file is replaced rather than blocking the save.
			st = config.UIState{}
		}
		st.HideImages = !showImages
		return prefsSavedMsg{err: config.SaveUIState(path, st)}
	}
}

// View renders the active sub-model.
func (a App) View() string {
	switch a.active {
	case composeView:
		return a.compose.View()
	default:
		return a.feed.View()
	}
}
