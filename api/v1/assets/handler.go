package assets

import (
	"errors"

	"go_assetdb/internal/asset"
	"go_assetdb/internal/cache"
	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"
	"go_assetdb/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Handler handles asset-related requests
type Handler struct {
	svc     *asset.Service
	publish func(eventType string, payload interface{}) error
}

// NewHandler creates a new assets handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		svc:     asset.NewService(db),
		publish: ws.PublishAssetEvent,
	}
}

// failStoreErr maps store errors to HTTP responses
func failStoreErr(c *gin.Context, err error) {
	var verr *asset.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.FailErr(c, httpx.ErrValidation(verr.Error()).WithData(verr.Fields))
	case errors.Is(err, asset.ErrNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
	case errors.Is(err, asset.ErrConflict):
		httpx.FailErr(c, httpx.ErrConflict("asset was updated or deleted, refresh and retry"))
	default:
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
	}
}

// afterWrite invalidates cached statistics and notifies websocket clients
func (h *Handler) afterWrite(c *gin.Context, eventType string, payload interface{}) {
	cache.InvalidateStats(c.Request.Context())
	if err := h.publish(eventType, payload); err != nil {
		logrus.WithError(err).Warn("failed to publish asset event")
	}
}

// List handles GET /assets
func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid query parameters"))
		return
	}

	filter, err := q.toFilter()
	if err != nil {
		failStoreErr(c, err)
		return
	}

	rows, total, err := h.svc.List(filter)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	httpx.OKItems(c, rows, total, filter.Page, filter.PageSize)
}

// Get handles GET /assets/:id, returning the latest version
func (h *Handler) Get(c *gin.Context) {
	row, err := h.svc.GetLatest(c.Param("id"))
	if err != nil {
		failStoreErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// GetByAssetNo handles GET /assets/by-asset-number/:assetNo
func (h *Handler) GetByAssetNo(c *gin.Context) {
	row, err := h.svc.GetByAssetNo(c.Param("assetNo"))
	if err != nil {
		failStoreErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// ListVersions handles GET /assets/versions/:assetNo, returning the whole
// lineage newest first
func (h *Handler) ListVersions(c *gin.Context) {
	rows, err := h.svc.ListVersions(c.Param("assetNo"))
	if err != nil {
		failStoreErr(c, err)
		return
	}
	httpx.OK(c, rows)
}

// Create handles POST /assets
func (h *Handler) Create(c *gin.Context) {
	var req assetPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	attrs, err := req.toAttributes()
	if err != nil {
		failStoreErr(c, err)
		return
	}

	row, err := h.svc.Create(attrs)
	if err != nil {
		failStoreErr(c, err)
		return
	}

	h.afterWrite(c, model.WSEventTypeAdd, row)
	httpx.OK(c, row)
}

// Update handles PUT /assets/:id, creating a new version from the given row
func (h *Handler) Update(c *gin.Context) {
	var req assetPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		failStoreErr(c, err)
		return
	}

	row, err := h.svc.Update(c.Param("id"), patch)
	if err != nil {
		failStoreErr(c, err)
		return
	}

	h.afterWrite(c, model.WSEventTypeUpdate, row)
	httpx.OK(c, row)
}

// Delete handles DELETE /assets/:id, soft-deleting the latest version
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.SoftDelete(id); err != nil {
		failStoreErr(c, err)
		return
	}

	h.afterWrite(c, model.WSEventTypeDelete, gin.H{"id": id})
	httpx.OKMsg(c, "asset deleted", nil)
}
