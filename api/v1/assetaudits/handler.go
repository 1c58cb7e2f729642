package assetaudits

import (
	"errors"
	"time"

	"go_assetdb/internal/assetaudit"
	"go_assetdb/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles asset audit requests
type Handler struct {
	svc *assetaudit.Service
}

// NewHandler creates a new asset audits handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: assetaudit.NewService(db)}
}

// UpsertRequest is the body for creating or updating an audit record
type UpsertRequest struct {
	AssetID     string     `json:"assetId" binding:"required"`
	CheckedByID int        `json:"checkedById" binding:"required"`
	CheckDate   *time.Time `json:"checkDate"`
	LocationID  *int       `json:"locationId"`
	Status      string     `json:"status" binding:"required"`
	Remarks     *string    `json:"remarks"`
}

func (r *UpsertRequest) toParams() assetaudit.Params {
	return assetaudit.Params{
		AssetID:     r.AssetID,
		CheckedByID: r.CheckedByID,
		CheckDate:   r.CheckDate,
		LocationID:  r.LocationID,
		Status:      r.Status,
		Remarks:     r.Remarks,
	}
}

func failAuditErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assetaudit.ErrNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("audit record not found"))
	case errors.Is(err, assetaudit.ErrAssetNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("asset not found"))
	default:
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
	}
}

// List handles GET /asset-audits with optional assetId and status filters
func (h *Handler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Query("assetId"), c.Query("status"))
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Get handles GET /asset-audits/:id
func (h *Handler) Get(c *gin.Context) {
	row, err := h.svc.Get(c.Param("id"))
	if err != nil {
		failAuditErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Create handles POST /asset-audits
func (h *Handler) Create(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("assetId, checkedById and status are required"))
		return
	}

	row, err := h.svc.Create(req.toParams())
	if err != nil {
		failAuditErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /asset-audits/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("assetId, checkedById and status are required"))
		return
	}

	row, err := h.svc.Update(c.Param("id"), req.toParams())
	if err != nil {
		failAuditErr(c, err)
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /asset-audits/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		failAuditErr(c, err)
		return
	}
	httpx.OKMsg(c, "audit record deleted", nil)
}
