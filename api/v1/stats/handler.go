package stats

import (
	"time"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/stats"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles dashboard statistics requests
type Handler struct {
	svc *stats.Service
}

// NewHandler creates a new stats handler
func NewHandler(db *gorm.DB, cacheTTL time.Duration) *Handler {
	return &Handler{svc: stats.NewService(db, cacheTTL)}
}

// Overview handles GET /stats/overview
func (h *Handler) Overview(c *gin.Context) {
	out, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, out)
}

// ByCategory handles GET /stats/by-category
func (h *Handler) ByCategory(c *gin.Context) {
	rows, err := h.svc.ByCategory(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// ByLocation handles GET /stats/by-location
func (h *Handler) ByLocation(c *gin.Context) {
	rows, err := h.svc.ByLocation(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}
