package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/blog"
	"github.com/expertgati/movers-web/internal/lead"
	"github.com/expertgati/movers-web/internal/media"
	"github.com/expertgati/movers-web/internal/platform/config"
	"github.com/expertgati/movers-web/internal/seo"
	"github.com/expertgati/movers-web/internal/team"
)

// maxUploadBytes bounds how much of an upload is read. Anything past MaxPhotoBytes is
// rejected by the validator, so the excess is never needed.
const maxUploadBytes = 4 * media.MaxPhotoBytes

// SitemapInvalidator drops the cached sitemap after blog changes.
type SitemapInvalidator interface {
	Invalidate(ctx context.Context)
}

// Deps are the collaborators of Handler.
type Deps struct {
	Config   config.AdminConfig
	Metadata *seo.Repository
	Leads    *lead.Repository
	Blog     *blog.Service
	Team     *team.Service
	Sitemap  SitemapInvalidator
	Log      *zap.Logger
}

// Handler serves the operator JSON API.
type Handler struct {
	cfg     config.AdminConfig
	meta    *seo.Repository
	leads   *lead.Repository
	blog    *blog.Service
	team    *team.Service
	sitemap SitemapInvalidator
	log     *zap.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Handler{
		cfg:     d.Config,
		meta:    d.Metadata,
		leads:   d.Leads,
		blog:    d.Blog,
		team:    d.Team,
		sitemap: d.Sitemap,
		log:     d.Log,
	}
}

// Register mounts the API under /admin/api. Without configured accounts the API is not
// exposed at all.
func (h *Handler) Register(r gin.IRouter) bool {
	if len(h.cfg.Accounts) == 0 {
		h.log.Warn("admin api disabled: no accounts configured")
		return false
	}

	g := r.Group("/admin/api")
	if len(h.cfg.AllowedOrigins) > 0 {
		g.Use(cors.New(cors.Config{
			AllowOrigins:     h.cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	g.Use(gin.BasicAuth(gin.Accounts(h.cfg.Accounts)))

	g.GET("/site", h.Site)

	g.GET("/seo", h.ListMetadata)
	g.GET("/seo/:page", h.GetMetadata)
	g.PUT("/seo/:page", h.PutMetadata)
	g.POST("/seo/seed", h.SeedMetadata)

	g.GET("/leads/contact", h.ListContacts)
	g.GET("/leads/moving", h.ListMovingRequests)

	g.GET("/team", h.ListTeam)
	g.POST("/team", h.CreateTeamMember)
	g.POST("/team/:id/photo", h.UploadTeamPhoto)

	g.GET("/blog", h.ListPosts)
	g.POST("/blog", h.CreatePost)
	g.PUT("/blog/:slug", h.UpdatePost)
	return true
}

func (h *Handler) Site(c *gin.Context) {
	ok(c, gin.H{"header": h.cfg.Header, "title": h.cfg.Title}, nil)
}

func (h *Handler) ListMetadata(c *gin.Context) {
	metas, err := h.meta.List(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, metas, map[string]any{"total": len(metas)})
}

func (h *Handler) GetMetadata(c *gin.Context) {
	meta, err := h.meta.GetByPageName(c.Request.Context(), c.Param("page"))
	if err != nil {
		if errors.Is(err, seo.ErrNotFound) {
			fail(c, http.StatusNotFound, "page metadata not found", nil)
			return
		}
		h.internal(c, err)
		return
	}
	ok(c, meta, nil)
}

// PutMetadata replaces every writable field of the page, creating the record if needed.
func (h *Handler) PutMetadata(c *gin.Context) {
	var b seo.Bundle
	if err := c.ShouldBindJSON(&b); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
		return
	}
	b.PageName = c.Param("page")

	ctx := c.Request.Context()
	result, err := h.meta.UpsertMany(ctx, []seo.Bundle{b})
	if err != nil {
		if errors.Is(err, seo.ErrInvalidPageName) {
			fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.internal(c, err)
		return
	}
	meta, err := h.meta.GetByPageName(ctx, b.PageName)
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, meta, map[string]any{"created": result.Created == 1})
}

func (h *Handler) SeedMetadata(c *gin.Context) {
	result, err := h.meta.UpsertMany(c.Request.Context(), seo.DefaultBundles())
	if err != nil {
		h.internal(c, err)
		return
	}
	h.log.Info("metadata seeded", zap.Int("created", result.Created), zap.Int("updated", result.Updated))
	ok(c, result, nil)
}

func pageFrom(c *gin.Context) lead.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return lead.Page{Limit: limit, Offset: offset}
}

func (h *Handler) ListContacts(c *gin.Context) {
	p := pageFrom(c)
	rows, total, err := h.leads.ListContacts(c.Request.Context(), p)
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, rows, map[string]any{"total": total, "limit": p.Limit, "offset": p.Offset})
}

func (h *Handler) ListMovingRequests(c *gin.Context) {
	p := pageFrom(c)
	rows, total, err := h.leads.ListMovingRequests(c.Request.Context(), p)
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, rows, map[string]any{"total": total, "limit": p.Limit, "offset": p.Offset})
}

func (h *Handler) ListTeam(c *gin.Context) {
	members, err := h.team.List(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, members, map[string]any{"total": len(members)})
}

func (h *Handler) CreateTeamMember(c *gin.Context) {
	var in team.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
		return
	}
	m, err := h.team.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, team.ErrInvalidInput) {
			fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.internal(c, err)
		return
	}
	created(c, m)
}

func (h *Handler) UploadTeamPhoto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid team member id", nil)
		return
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		fail(c, http.StatusBadRequest, "photo file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.internal(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		h.internal(c, err)
		return
	}

	m, err := h.team.SetPhoto(c.Request.Context(), uint(id), data)
	if err != nil {
		var cerr *media.ConstraintError
		switch {
		case errors.As(err, &cerr):
			fail(c, http.StatusUnprocessableEntity, cerr.Message, map[string]any{"field": "photo", "code": cerr.Code})
		case errors.Is(err, team.ErrNotFound):
			fail(c, http.StatusNotFound, err.Error(), nil)
		default:
			h.internal(c, err)
		}
		return
	}
	ok(c, m, nil)
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.blog.ListAll(c.Request.Context())
	if err != nil {
		h.internal(c, err)
		return
	}
	ok(c, posts, map[string]any{"total": len(posts)})
}

func (h *Handler) CreatePost(c *gin.Context) {
	var in blog.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
		return
	}
	p, err := h.blog.Create(c.Request.Context(), in)
	if err != nil {
		h.blogError(c, err)
		return
	}
	h.invalidateSitemap(c)
	created(c, p)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var in blog.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
		return
	}
	p, err := h.blog.Update(c.Request.Context(), c.Param("slug"), in)
	if err != nil {
		h.blogError(c, err)
		return
	}
	h.invalidateSitemap(c)
	ok(c, p, nil)
}

func (h *Handler) blogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrInvalidInput):
		fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, blog.ErrSlugTaken):
		fail(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, blog.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error(), nil)
	default:
		h.internal(c, err)
	}
}

func (h *Handler) invalidateSitemap(c *gin.Context) {
	if h.sitemap != nil {
		h.sitemap.Invalidate(c.Request.Context())
	}
}

func (h *Handler) internal(c *gin.Context, err error) {
	h.log.Error("admin api", zap.String("path", c.FullPath()), zap.Error(err))
	fail(c, http.StatusInternalServerError, "internal error", nil)
}
