package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/admin"
	"github.com/expertgati/movers-web/internal/pages"
	"github.com/expertgati/movers-web/internal/platform/health"
	"github.com/expertgati/movers-web/internal/sitemap"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Pages     *pages.Handler
	Renderer  *pages.Renderer
	Sitemap   *sitemap.Handler
	Health    *health.Handler
	Admin     *admin.Handler
	StaticDir string
	MediaDir  string
}

// NewEngine builds a gin engine with recovery, request ids and zap request logging.
// Forwarding headers are only honoured from trustedProxies; with none, ClientIP is the
// socket peer.
func NewEngine(log *zap.Logger, trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), RequestID(), Logger(log))
	return r, nil
}

// SetupRoutes registers every route of the site.
func SetupRoutes(r *gin.Engine, h Handlers) {
	r.HTMLRender = h.Renderer

	if h.StaticDir != "" {
		r.Static("/static", h.StaticDir)
	}
	if h.MediaDir != "" {
		r.Static("/media", h.MediaDir)
	}

	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)
	r.GET("/sitemap.xml", h.Sitemap.Sitemap)
	r.GET("/robots.txt", h.Sitemap.Robots)

	h.Pages.Register(r)
	if h.Admin != nil {
		h.Admin.Register(r)
	}
	r.NoRoute(h.Pages.NotFound)
}
