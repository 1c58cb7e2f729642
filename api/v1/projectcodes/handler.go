package projectcodes

import (
	"errors"

	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Handler handles project code requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new project codes handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type upsertRequest struct {
	Code string `json:"code" binding:"required"`
}

// List handles GET /project-codes
func (h *Handler) List(c *gin.Context) {
	var rows []model.ProjectCode
	if err := h.db.Order("code ASC").Find(&rows).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Create handles POST /project-codes
func (h *Handler) Create(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("code is required"))
		return
	}

	row := model.ProjectCode{Code: req.Code}
	if err := h.db.Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("project code already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /project-codes/:id
func (h *Handler) Update(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("code is required"))
		return
	}

	var row model.ProjectCode
	if err := h.db.Where("id = ?", c.Param("id")).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("project code not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	row.Code = req.Code
	if err := h.db.Save(&row).Error; err != nil {
		if isDuplicateKey(err) {
			httpx.FailErr(c, httpx.ErrAlreadyExists("project code already exists"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /project-codes/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	var inUse int64
	err := h.db.Model(&model.Asset{}).
		Where("project_code_id = ? AND is_latest = ? AND deleted_at IS NULL", id, true).
		Count(&inUse).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	if inUse > 0 {
		httpx.FailErr(c, httpx.ErrConflict("project code is referenced by active assets"))
		return
	}

	res := h.db.Where("id = ?", id).Delete(&model.ProjectCode{})
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("project code not found"))
		return
	}
	httpx.OKMsg(c, "project code deleted", nil)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
