package sitemap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/expertgati/movers-web/internal/blog"
)

type stubPosts struct {
	posts []blog.Post
	err   error
	calls int
}

func (s *stubPosts) ListPublished(context.Context) ([]blog.Post, error) {
	s.calls++
	return s.posts, s.err
}

func TestRenderListsStaticRoutesAndPosts(t *testing.T) {
	posts := &stubPosts{posts: []blog.Post{{
		Slug:      "packing-tips",
		UpdatedAt: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
	}}}
	gen := NewGenerator("https://example.com/", posts, nil)

	doc, err := gen.Render(context.Background())
	require.NoError(t, err)

	sel, err := goquery.NewDocumentFromReader(strings.NewReader(string(doc)))
	require.NoError(t, err)

	var locs []string
	sel.Find("url > loc").Each(func(_ int, s *goquery.Selection) {
		locs = append(locs, s.Text())
	})
	require.Len(t, locs, len(StaticRoutes)+1)
	require.Equal(t, "https://example.com/", locs[0])
	require.Contains(t, locs, "https://example.com/teams/")
	require.Equal(t, "https://example.com/blog/packing-tips/", locs[len(locs)-1])
	require.Contains(t, string(doc), "<lastmod>2026-03-04</lastmod>")
}

func TestDocumentIsCached(t *testing.T) {
	posts := &stubPosts{}
	cache := NewMemoryCache()
	gen := NewGenerator("https://example.com", posts, cache)
	ctx := context.Background()

	first, err := gen.Document(ctx)
	require.NoError(t, err)
	second, err := gen.Document(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, posts.calls)

	gen.Invalidate(ctx)
	_, err = gen.Document(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, posts.calls)

	cache.now = func() time.Time { return time.Now().Add(CacheTTL + time.Minute) }
	_, ok := cache.Get(ctx, CacheKey)
	require.False(t, ok)
}

func TestHandlerHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewGenerator("https://example.com", &stubPosts{}, nil), nil)
	r := gin.New()
	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/robots.txt", h.Robots)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	require.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}

func TestHandlerReportsListingFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewGenerator("https://example.com", &stubPosts{err: errors.New("boom")}, nil), nil)
	r := gin.New()
	r.GET("/sitemap.xml", h.Sitemap)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
