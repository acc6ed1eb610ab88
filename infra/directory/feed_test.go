package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/infra/auth"
)

func newServer(t *testing.T, h http.HandlerFunc) *FeedService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewFeedService(NewClient(srv.URL, auth.Static("tok")))
}

func TestFetchPage_MapsPostsAndSendsQuery(t *testing.T) {
	var gotAuth, gotQuery string
	svc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/feed/posts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{
			"offset": 15,
			"total": 40,
			"posts": [{
				"id": "p16",
				"author": {"name": "Ana \u001b[31mRed", "avatar_url": "https://a/1.png", "description": "Owner"},
				"caption": "<p>Open &amp; ready</p><br/>Come by",
				"created_at": "2026-03-01T10:00:00Z",
				"likes": 4,
				"image_url": "https://img/p16.png",
				"comments": [{"id": "c1", "author": {"name": "Ben"}, "content": "Congrats!", "created_at": "2026-03-01T11:00:00Z"}]
			}]
		}`)
	})

	page, err := svc.FetchPage(context.Background(), 15, 15)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "limit=15&offset=15", gotQuery)
	assert.Equal(t, 40, page.Total)
	require.Len(t, page.Posts, 1)

	p := page.Posts[0]
	assert.Equal(t, "Ana Red", p.Author.Name)
	assert.Equal(t, "Owner", p.Author.Headline)
	assert.Equal(t, "Open & ready\n\nCome by", p.Caption)
	assert.True(t, p.HasImage())
	assert.Equal(t, 2026, p.CreatedAt.Year())
	require.Len(t, p.Comments, 1)
	assert.Equal(t, "Congrats!", p.Comments[0].Content)
}

func TestFetchPage_TotalNeverBelowDelivered(t *testing.T) {
	svc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"posts":[{"id":"a"},{"id":"b"}]}`)
	})
	page, err := svc.FetchPage(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
}

func TestFetchPage_FullPageWithoutTotalHasMore(t *testing.T) {
	svc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"posts":[{"id":"a"},{"id":"b"}]}`)
		case "2":
			fmt.Fprint(w, `{"posts":[{"id":"c"}]}`)
		default:
			fmt.Fprint(w, `{"posts":[]}`)
		}
	})

	first, err := svc.FetchPage(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.True(t, first.HasMore(), "a full page without a total should allow paging on")
	assert.Equal(t, 4, first.Total)

	last, err := svc.FetchPage(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.False(t, last.HasMore())
	assert.Equal(t, 3, last.Total)
}

func TestFetchPage_Errors(t *testing.T) {
	svc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := svc.FetchPage(context.Background(), 0, 15)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	_, err = svc.FetchPage(context.Background(), 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidPage)

	bad := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not-json`)
	})
	_, err = bad.FetchPage(context.Background(), 0, 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing feed")
}

func TestFetchPost_NotFound(t *testing.T) {
	svc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/feed/posts/known" {
			fmt.Fprint(w, `{"id":"known","caption":"hi"}`)
			return
		}
		http.NotFound(w, r)
	})
	p, err := svc.FetchPost(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Caption)

	_, err = svc.FetchPost(context.Background(), "gone")
	require.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestClient_AnonymousWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			http.Error(w, "unexpected auth", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"posts":[],"total":0}`)
	}))
	defer srv.Close()

	svc := NewFeedService(NewClient(srv.URL, auth.NewOptionalFileTokenProvider("")))
	_, err := svc.FetchPage(context.Background(), 0, 15)
	require.NoError(t, err)

	svc = NewFeedService(NewClient(srv.URL, nil))
	_, err = svc.FetchPage(context.Background(), 0, 15)
	require.NoError(t, err)
}

func TestStripHTML_DecodesEntitiesAndStripsTags(t *testing.T) {
	in := `<p>Hello &lt;world&gt; &amp; crew</p><script>x</script><br/>line2`
	got := stripHTML(in)
	if strings.Contains(got, "<p>") || strings.Contains(got, "<script>") || strings.Contains(got, "x\n") {
		t.Fatalf("expected HTML tags stripped: %q", got)
	}
	if !strings.Contains(got, "<world>") || !strings.Contains(got, "&") {
		t.Fatalf("expected html entities decoded: %q", got)
	}
	if !strings.Contains(got, "\nline2") {
		t.Fatalf("expected line break retained: %q", got)
	}
}

func TestSanitizeForTerminal_RemovesEscapesAndControls(t *testing.T) {
	in := "ok\x1b[31mred\x1b[0m\x1b]8;;http://x\x07bad\x01\x02\nnext"
	got := sanitizeForTerminal(in)
	if strings.Contains(got, "\x1b") {
		t.Fatalf("expected ansi removed: %q", got)
	}
	if strings.ContainsRune(got, '\x01') || strings.ContainsRune(got, '\x02') {
		t.Fatalf("expected controls removed: %q", got)
	}
	if !strings.Contains(got, "ok") || !strings.Contains(got, "red") || !strings.Contains(got, "\nnext") {
		t.Fatalf("expected plain text preserved: %q", got)
	}
}
