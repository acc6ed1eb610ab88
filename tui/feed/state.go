package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/bizfeed/app"
	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/tui/common"
	"github.com/CrestNiraj12/bizfeed/tui/virtual"
)

const fetchTimeout = 15 * time.Second

// PostsLoadedMsg is sent when the first page of the feed arrives.
type PostsLoadedMsg struct {
	Page   domain.Page
	ReqSeq int
}

// PostsErrorMsg is sent when loading the first page fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// PageLoadedMsg is sent when a further page arrives.
type PageLoadedMsg struct {
	Page   domain.Page
	ReqSeq int
}

// PageErrorMsg is sent when loading a further page fails.
type PageErrorMsg struct {
	Err    error
	ReqSeq int
}

// PostRefreshedMsg carries a fresh copy of a focused post.
type PostRefreshedMsg struct {
	Post domain.Post
	Err  error
}

// ImageLoadedMsg carries a rendered preview, or the error that prevented it.
type ImageLoadedMsg struct {
	Key     string
	Preview string
	Err     error
}

// ComposeCommentMsg asks the app to open the comment composer.
type ComposeCommentMsg struct {
	PostID    string
	Author    string
	UseInline bool
}

// AddCommentMsg appends a locally written comment to a post.
type AddCommentMsg struct {
	PostID  string
	Content string
}

// PrefsChangedMsg reports a preference the app should persist.
type PrefsChangedMsg struct {
	ShowImages bool
}

// Deps are the collaborators and settings of the feed.
type Deps struct {
	Source      app.PostSource
	Images      app.ImageLoader // Optional; nil disables previews
	Logger      *zap.Logger
	PageSize    int
	ShowImages  bool
	SourceLabel string
	Now         func() time.Time
}

type anchorMode int

const (
	anchorNone anchorMode = iota
	anchorCursor
	anchorBottom
)

// --- Model ---

type modelServices struct {
	source app.PostSource
	images app.ImageLoader
	log    *zap.Logger
	now    func() time.Time
}

type feedState struct {
	sourceLabel  string
	posts        []domain.Post
	seen         map[string]bool
	total        int
	nextOffset   int
	pageSize     int
	visibleCount int
	loading      bool
	loadingMore  bool
	err          error
	pageErr      error
	reqSeq       int
}

type interactionState struct {
	open         map[string]bool
	focusID      string
	comments     map[string][]domain.Comment // Client-local comment lists
	liked        map[string]bool
	expanded     map[string]bool
	commentLists map[string]virtual.Virtualizer
	panelFollow  map[string]bool // Scroll the panel to its end on next layout
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	width        int
	height       int
	cursorID     string
	anchor       anchorMode
	scrolled     bool // The last key moved the viewport
	notice       string
	showAllHints bool
}

type layoutState struct {
	list      virtual.Virtualizer
	observers virtual.Observers
	rows      []Row
	rendered  map[string]string
}

type mediaState struct {
	showImages   bool
	previews     map[string]string
	imageLoading map[string]bool
}

// Model holds the state of the windowed feed.
type Model struct {
	modelServices
	feedState
	interactionState
	uiState
	layoutState
	mediaState
}

// New creates a feed model with injected dependencies.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#0A84FF"))

	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		modelServices: modelServices{
			source: deps.Source,
			images: deps.Images,
			log:    logger,
			now:    now,
		},
		feedState: feedState{
			sourceLabel: deps.SourceLabel,
			seen:        make(map[string]bool),
			pageSize:    pageSize,
			loading:     true,
		},
		interactionState: interactionState{
			open:         make(map[string]bool),
			comments:     make(map[string][]domain.Comment),
			liked:        make(map[string]bool),
			expanded:     make(map[string]bool),
			commentLists: make(map[string]virtual.Virtualizer),
			panelFollow:  make(map[string]bool),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
		},
		layoutState: layoutState{
			list: virtual.New(virtual.Options{
				Overscan: overscanRows,
				Gap:      rowGap,
			}),
			observers: virtual.NewObservers(),
			rendered:  make(map[string]string),
		},
		mediaState: mediaState{
			showImages:   deps.ShowImages,
			previews:     make(map[string]string),
			imageLoading: make(map[string]bool),
		},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchFirstPage(m.reqSeq),
		m.spinner.Tick,
	)
}

// Refresh returns a Cmd that reloads the feed from its first page.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.loadingMore = false
	m.err = nil
	m.pageErr = nil
	m.reqSeq++
	return m.fetchFirstPage(m.reqSeq)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// --- Accessors ---

// Posts returns every post loaded so far.
func (m Model) Posts() []domain.Post {
	return m.posts
}

// VisiblePosts returns the posts currently laid out as rows.
func (m Model) VisiblePosts() []domain.Post {
	if m.focusID != "" {
		if p, ok := m.findPost(m.focusID); ok {
			return []domain.Post{p}
		}
		return nil
	}
	return m.posts[:min(m.visibleCount, len(m.posts))]
}

// VisibleCount is the number of posts revealed by paging.
func (m Model) VisibleCount() int {
	return len(m.VisiblePosts())
}

// Rows returns the current row list.
func (m Model) Rows() []Row {
	return m.rows
}

// Total is the number of posts the source reports.
func (m Model) Total() int {
	return m.total
}

// FocusID returns the focused post, or "" outside focus mode.
func (m Model) FocusID() string {
	return m.focusID
}

// Focused reports whether focus mode is engaged.
func (m Model) Focused() bool {
	return m.focusID != ""
}

// CursorID returns the post under the cursor.
func (m Model) CursorID() string {
	return m.cursorID
}

// IsOpen reports whether the comment panel of id is open.
func (m Model) IsOpen(id string) bool {
	return m.open[id]
}

// Comments returns the comment list shown for post id.
func (m Model) Comments(id string) []domain.Comment {
	if c, ok := m.comments[id]; ok {
		return c
	}
	if p, ok := m.findPost(id); ok {
		return p.Comments
	}
	return nil
}

// Likes returns the displayed like count of post id and whether the user
// liked it in this session.
func (m Model) Likes(id string) (int, bool) {
	p, ok := m.findPost(id)
	if !ok {
		return 0, false
	}
	if m.liked[id] {
		return p.Likes + 1, true
	}
	return p.Likes, false
}

// Loading reports whether the first page is still loading.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the error of the last first-page load.
func (m Model) Err() error {
	return m.err
}

// ShowImages reports whether image previews are on.
func (m Model) ShowImages() bool {
	return m.imagesEnabled()
}

// ObserverCount is the number of attached row observers.
func (m Model) ObserverCount() int {
	return m.observers.Len()
}

// Offset returns the first visible line of the list.
func (m Model) Offset() int {
	return m.list.Offset()
}

func (m Model) findPost(id string) (domain.Post, bool) {
	for _, p := range m.posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}

func (m Model) imagesEnabled() bool {
	return m.showImages && m.images != nil
}
