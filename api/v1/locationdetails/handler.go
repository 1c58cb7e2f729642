package locationdetails

import (
	"errors"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles detailed placement requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new location details handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type upsertRequest struct {
	Description string `json:"description" binding:"required"`
}

// List handles GET /location-details
func (h *Handler) List(c *gin.Context) {
	var rows []model.DetailsLocation
	if err := h.db.Order("description ASC").Find(&rows).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Create handles POST /location-details
func (h *Handler) Create(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("description is required"))
		return
	}

	row := model.DetailsLocation{Description: req.Description}
	if err := h.db.Create(&row).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /location-details/:id
func (h *Handler) Update(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("description is required"))
		return
	}

	var row model.DetailsLocation
	if err := h.db.Where("id = ?", c.Param("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("location detail not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	row.Description = req.Description
	if err := h.db.Save(&row).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /location-details/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var inUse int64
	err := h.db.Model(&model.Asset{}).
		Where("details_location_id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
		Count(&inUse).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	if inUse > 0 {
		httpx.FailErr(c, httpx.ErrConflict("location detail is referenced by active assets"))
		return
	}

	res := h.db.Where("id = ?", id).Delete(&model.DetailsLocation{})
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("location detail not found"))
		return
	}
	httpx.OKMsg(c, "location detail deleted", nil)
}
