package sitemap

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	gen *Generator
	log *zap.Logger
}

func NewHandler(gen *Generator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{gen: gen, log: log}
}

func (h *Handler) Sitemap(c *gin.Context) {
	doc, err := h.gen.Document(c.Request.Context())
	if err != nil {
		h.log.Error("render sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}

func (h *Handler) Robots(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.String(http.StatusOK, h.gen.Robots())
}
