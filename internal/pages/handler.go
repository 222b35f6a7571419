package pages

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/blog"
	"github.com/expertgati/movers-web/internal/lead"
	"github.com/expertgati/movers-web/internal/seo"
	"github.com/expertgati/movers-web/internal/team"
)

const (
	noticeSuccess = "success"

	msgContactThanks = "Thank you! Your message has been sent. We will get back to you shortly."
	msgMovingThanks  = "Thank you! Your moving request has been received. Our team will contact you soon."
)

// Deps are the collaborators of Handler.
type Deps struct {
	Metadata *seo.Repository
	Leads    *lead.Service
	Blog     *blog.Service
	Team     *team.Service
	Flash    *Flash
	Brand    seo.Brand
	Log      *zap.Logger
}

// Handler serves the public pages.
type Handler struct {
	meta  *seo.Repository
	leads *lead.Service
	blog  *blog.Service
	team  *team.Service
	flash *Flash
	brand seo.Brand
	log   *zap.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Handler{
		meta:  d.Metadata,
		leads: d.Leads,
		blog:  d.Blog,
		team:  d.Team,
		flash: d.Flash,
		brand: d.Brand,
		log:   d.Log,
	}
}

// Register mounts the public routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Home)
	r.POST("/", h.SubmitMovingRequest)
	r.GET("/contact/", h.Contact)
	r.POST("/contact/", h.SubmitContact)
	r.GET("/faqs/", h.static(seo.PageFAQs, "faqs"))
	r.GET("/ourcompany/", h.static(seo.PageOurCompany, "ourcompany"))
	r.GET("/rates/", h.static(seo.PageRates, "rates"))
	r.GET("/blog/", h.Blog)
	r.GET("/blog/:slug/", h.BlogPost)
	r.GET("/teams/", h.Teams)
}

// view loads (creating on first use) the page's metadata and resolves it.
func (h *Handler) view(c *gin.Context, page string) (*View, error) {
	meta, err := h.meta.CreateOrGet(c.Request.Context(), page, seo.DefaultBundle(page))
	if err != nil {
		return nil, err
	}
	path := c.Request.URL.Path
	v := h.newView(seo.Resolve(*meta, h.brand, path), path)
	v.Notice = h.flash.Pop(c)
	return v, nil
}

func (h *Handler) static(page, tmpl string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := h.view(c, page)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.HTML(http.StatusOK, tmpl, v)
	}
}

func (h *Handler) Home(c *gin.Context) {
	v, err := h.view(c, seo.PageHome)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "home", v)
}

func (h *Handler) SubmitMovingRequest(c *gin.Context) {
	var form lead.MovingRequestForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("bind form", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	_, err := h.leads.CreateMovingRequest(c.Request.Context(), form, c.ClientIP())
	if h.handleSubmission(c, err, msgMovingThanks) {
		return
	}

	v, verr := h.view(c, seo.PageHome)
	if verr != nil {
		h.fail(c, verr)
		return
	}
	v.Moving = form
	v.Errors = asValidation(err)
	c.HTML(http.StatusOK, "home", v)
}

func (h *Handler) Contact(c *gin.Context) {
	v, err := h.view(c, seo.PageContact)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "contact", v)
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var form lead.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("bind form", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	_, err := h.leads.CreateContact(c.Request.Context(), form, c.ClientIP())
	if h.handleSubmission(c, err, msgContactThanks) {
		return
	}

	v, verr := h.view(c, seo.PageContact)
	if verr != nil {
		h.fail(c, verr)
		return
	}
	v.Contact = form
	v.Errors = asValidation(err)
	c.HTML(http.StatusOK, "contact", v)
}

// handleSubmission finishes the request unless err is a validation failure, in which case
// the caller re-renders the form.
func (h *Handler) handleSubmission(c *gin.Context, err error, thanks string) bool {
	if err == nil {
		if ferr := h.flash.Set(c, Notice{Kind: noticeSuccess, Message: thanks}); ferr != nil {
			h.log.Warn("set flash notice", zap.Error(ferr))
		}
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return true
	}
	if asValidation(err) != nil {
		return false
	}
	h.fail(c, err)
	return true
}

func asValidation(err error) *lead.ValidationError {
	var verr *lead.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}

func (h *Handler) Blog(c *gin.Context) {
	v, err := h.view(c, seo.PageBlog)
	if err != nil {
		h.fail(c, err)
		return
	}
	if v.Posts, err = h.blog.ListPublished(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "blog", v)
}

func (h *Handler) BlogPost(c *gin.Context) {
	article, err := h.blog.Published(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			h.NotFound(c)
			return
		}
		h.fail(c, err)
		return
	}

	path := c.Request.URL.Path
	meta := seo.Resolve(seo.PageMetadata{
		PageName:        article.Title,
		MetaTitle:       article.Title + " | " + h.brand.TitleSuffix,
		MetaDescription: article.Summary,
		OGImageRef:      article.ImageRef,
		OGType:          "article",
	}, h.brand, path)

	v := h.newView(meta, path)
	v.Article = article
	v.ExtraSchemas = []string{
		seo.JSON(seo.Article(article.Title, meta.Canonical, meta.OGImage, h.brand.Name,
			formatISO(article.PublishedAt), article.UpdatedAt.UTC().Format(time.RFC3339))),
		seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
			{Name: "Home", Item: h.brand.BaseURL + "/"},
			{Name: "Blog", Item: h.brand.BaseURL + "/blog/"},
			{Name: article.Title, Item: meta.Canonical},
		})),
	}
	c.HTML(http.StatusOK, "blog_post", v)
}

func (h *Handler) Teams(c *gin.Context) {
	v, err := h.view(c, seo.PageTeams)
	if err != nil {
		h.fail(c, err)
		return
	}
	if v.Members, err = h.team.List(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "teams", v)
}

// NotFound renders the 404 page. It is also the engine's NoRoute handler.
func (h *Handler) NotFound(c *gin.Context) {
	h.errorPage(c, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.Error("render page", zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.errorPage(c, http.StatusInternalServerError, "Something went wrong", "Please try again in a moment or call us directly.")
}

func (h *Handler) errorPage(c *gin.Context, status int, title, message string) {
	path := c.Request.URL.Path
	meta := seo.Resolve(seo.PageMetadata{PageName: title, MetaTitle: title + " | " + h.brand.TitleSuffix, Robots: "noindex, nofollow"}, h.brand, path)
	v := h.newView(meta, path)
	v.Status = status
	v.Message = message
	c.HTML(status, errorTemplate, v)
}

func formatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
