package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/expertgati/movers-web/internal/blog"
)

const (
	CacheKey = "sitemap:xml"
	CacheTTL = 24 * time.Hour
)

// Route is one static location.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// StaticRoutes are the public pages, home first.
var StaticRoutes = []Route{
	{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/contact/", ChangeFreq: "monthly", Priority: 0.9},
	{Path: "/faqs/", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/ourcompany/", ChangeFreq: "monthly", Priority: 0.7},
	{Path: "/rates/", ChangeFreq: "monthly", Priority: 0.8},
	{Path: "/blog/", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/teams/", ChangeFreq: "monthly", Priority: 0.6},
}

// PostLister is the part of the blog service the generator needs.
type PostLister interface {
	ListPublished(ctx context.Context) ([]blog.Post, error)
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

// Generator renders and caches the sitemap document.
type Generator struct {
	baseURL string
	posts   PostLister
	cache   Cache
}

func NewGenerator(baseURL string, posts PostLister, cache Cache) *Generator {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), posts: posts, cache: cache}
}

// Document returns the cached sitemap, rendering it on a miss.
func (g *Generator) Document(ctx context.Context) ([]byte, error) {
	if b, ok := g.cache.Get(ctx, CacheKey); ok {
		return b, nil
	}
	b, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}
	g.cache.Set(ctx, CacheKey, b, CacheTTL)
	return b, nil
}

// Invalidate drops the cached document so the next request re-renders it.
func (g *Generator) Invalidate(ctx context.Context) {
	g.cache.Delete(ctx, CacheKey)
}

// Render builds the document without consulting the cache.
func (g *Generator) Render(ctx context.Context) ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, r := range StaticRoutes {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        g.baseURL + r.Path,
			ChangeFreq: r.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", r.Priority),
		})
	}

	if g.posts != nil {
		posts, err := g.posts.ListPublished(ctx)
		if err != nil {
			return nil, fmt.Errorf("sitemap posts: %w", err)
		}
		for _, p := range posts {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        g.baseURL + "/blog/" + p.Slug + "/",
				LastMod:    p.UpdatedAt.UTC().Format(time.DateOnly),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			})
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

// Robots returns robots.txt content pointing at the sitemap.
func (g *Generator) Robots() string {
	return "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + g.baseURL + "/sitemap.xml\n"
}
