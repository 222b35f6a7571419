package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/expertgati/movers-web/internal/platform/database"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	db      *gorm.DB
	checker *Checker
}

// NewHandler accepts a nil checker when Redis is disabled.
func NewHandler(db *gorm.DB, checker *Checker) *Handler {
	return &Handler{db: db, checker: checker}
}

func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready fails only when the database is unreachable. A degraded cache has in-process fallbacks.
func (h *Handler) Ready(c *gin.Context) {
	body := gin.H{"database": "ok", "cache": "disabled"}
	if h.checker != nil {
		body["cache"] = h.checker.State().String()
	}
	if err := database.Ping(h.db); err != nil {
		body["database"] = err.Error()
		body["status"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ok"
	c.JSON(http.StatusOK, body)
}
