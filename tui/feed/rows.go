package feed

import (
	"unicode/utf8"

	"github.com/CrestNiraj12/bizfeed/domain"
)

// Layout constants, in terminal lines unless noted.
const (
	DefaultPageSize = 15

	overscanRows     = 8
	rowGap           = 1
	nearEndThreshold = 10
	maxLayoutPasses  = 3

	commentRowEstimate  = 14
	postBaseLines       = 4 // border + author + headline
	captionCharsPerLine = 50
	imageLines          = 8 // preview + spacer
	interactionLines    = 2

	imagePreviewLines = imageLines - 1
	readMoreThreshold = 140 // characters

	commentEstimate        = 3
	commentOverscan        = 8
	commentPanelFeedLines  = 8
	commentPanelFocusLines = 16
)

// RowKind distinguishes post rows from comment panel rows.
type RowKind int

const (
	PostRow RowKind = iota
	CommentsRow
)

// Row is one entry of the windowed list: a post, or the open comment panel
// that follows it.
type Row struct {
	Kind RowKind
	Post domain.Post
}

// Key identifies the row across re-layouts.
func (r Row) Key() string {
	if r.Kind == CommentsRow {
		return "comments:" + r.Post.ID
	}
	return "post:" + r.Post.ID
}

func postKey(id string) string {
	return Row{Kind: PostRow, Post: domain.Post{ID: id}}.Key()
}

// BuildRows interleaves posts with a comment row after every post whose
// panel is open. A post id seen twice is only listed once.
func BuildRows(posts []domain.Post, open map[string]bool) []Row {
	rows := make([]Row, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		rows = append(rows, Row{Kind: PostRow, Post: p})
		if open[p.ID] {
			rows = append(rows, Row{Kind: CommentsRow, Post: p})
		}
	}
	return rows
}

// estimatePostHeight is the height of a post row before it is measured. It
// never decreases as the caption grows.
func estimatePostHeight(captionLen int, hasImage bool) int {
	h := postBaseLines + (max(captionLen, 0)+captionCharsPerLine-1)/captionCharsPerLine + interactionLines
	if hasImage {
		h += imageLines
	}
	return h
}

func estimateRow(r Row, showImages bool) int {
	if r.Kind == CommentsRow {
		return commentRowEstimate
	}
	return estimatePostHeight(utf8.RuneCountInString(r.Post.Caption), showImages && r.Post.HasImage())
}
