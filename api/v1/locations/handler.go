package locations

import (
	"errors"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Handler handles location description requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new locations handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// upsertRequest is the body for create and update
type upsertRequest struct {
	Description string `json:"description" binding:"required"`
}

// List handles GET /locations
func (h *Handler) List(c *gin.Context) {
	var rows []model.LocationDesc
	if err := h.db.Order("description ASC").Find(&rows).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Create handles POST /locations
func (h *Handler) Create(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("description is required"))
		return
	}

	row := model.LocationDesc{Description: req.Description}
	if err := h.db.Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("location already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /locations/:id
func (h *Handler) Update(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("description is required"))
		return
	}

	var row model.LocationDesc
	if err := h.db.Where("id = ?", c.Param("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("location not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	row.Description = req.Description
	if err := h.db.Save(&row).Error; err != nil {
		if isDuplicateKey(err) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("location already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /locations/:id. Locations still referenced by active
// assets cannot be removed.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var inUse int64
	err := h.db.Model(&model.Asset{}).
		Where("location_desc_id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
		Count(&inUse).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	if inUse > 0 {
		httpx.FailErr(c, httpx.ErrConflict("location is referenced by active assets"))
		return
	}

	res := h.db.Where("id = ?", id).Delete(&model.LocationDesc{})
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("location not found"))
		return
	}
	httpx.OKMsg(c, "location deleted", nil)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
