package inspections

import (
	"errors"
	"time"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/inspection"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles inspection round requests
type Handler struct {
	svc *inspection.Service
}

// NewHandler creates a new inspections handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: inspection.NewService(db)}
}

// UpsertRequest is the body for creating or updating an inspection
type UpsertRequest struct {
	Date  *time.Time `json:"date"`
	Notes *string    `json:"notes"`
}

// AddItemRequest is the body for attaching an asset version
type AddItemRequest struct {
	AssetID      string `json:"assetId" binding:"required"`
	AssetVersion int    `json:"assetVersion" binding:"required,min=1"`
}

func failInspectionErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inspection.ErrNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("inspection not found"))
	case errors.Is(err, inspection.ErrAssetNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
	case errors.Is(err, inspection.ErrItemNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("inspection item not found"))
	default:
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
	}
}

// List handles GET /inspections
func (h *Handler) List(c *gin.Context) {
	rows, err := h.svc.List()
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Get handles GET /inspections/:id
func (h *Handler) Get(c *gin.Context) {
	row, err := h.svc.Get(c.Param("id"))
	if err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Create handles POST /inspections. The inspector is the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	uid := c.GetInt("uid")
	if uid == 0 {
		httpx.FailErr(c, httpx.ErrUnauthorized("missing user context"))
		return
	}

	row, err := h.svc.Create(uid, req.Date, req.Notes)
	if err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /inspections/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	row, err := h.svc.Update(c.Param("id"), req.Date, req.Notes)
	if err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /inspections/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OKMsg(c, "inspection deleted", nil)
}

// AddItem handles POST /inspections/:id/items
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("assetId and assetVersion are required"))
		return
	}

	item, err := h.svc.AddItem(c.Param("id"), req.AssetID, req.AssetVersion)
	if err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OK(c, item)
}

// RemoveItem handles DELETE /inspections/:id/items/:itemId
func (h *Handler) RemoveItem(c *gin.Context) {
	if err := h.svc.RemoveItem(c.Param("itemId")); err != nil {
		failInspectionErr(c, err)
		return
	}
	httpx.OKMsg(c, "item removed", nil)
}
