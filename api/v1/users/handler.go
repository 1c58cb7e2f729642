package users

import (
	"errors"
	"time"

	"go_assetdb/internal/auth"
	"go_assetdb/internal/httpx"
	"go_assetdb/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles user account requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateRequest is the body for creating a user
type CreateRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required,min=8"`
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Role      string  `json:"role"`
	Placement *string `json:"placement"`
}

// UpdateRequest is the body for updating a user; all fields optional
type UpdateRequest struct {
	Password  *string `json:"password"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Placement *string `json:"placement"`
	Status    *string `json:"status"`
}

// List handles GET /users. Soft-deleted accounts are excluded unless
// includeDeleted=1 is passed.
func (h *Handler) List(c *gin.Context) {
	query := h.db.Model(&model.User{})
	if c.Query("includeDeleted") != "1" {
		query = query.Where("deleted_at IS NULL")
	}

	var rows []model.User
	if err := query.Order("username ASC").Find(&rows).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, rows)
}

// Get handles GET /users/:id
func (h *Handler) Get(c *gin.Context) {
	var row model.User
	err := h.db.Where("id = ? AND deleted_at IS NULL", c.Param("id")).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("user not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Create handles POST /users
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleStaff
	}
	if role != model.UserRoleAdmin && role != model.UserRoleStaff {
		httpx.FailErr(c, httpx.ErrParamInvalid("unknown role"))
		return
	}

	var existing int64
	err := h.db.Model(&model.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&existing).Error
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	if existing > 0 {
		httpx.FailErr(c, httpx.ErrAlreadyExists("username or email already taken"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.FailErr(c, httpx.ErrInternalError("failed to hash password", err))
		return
	}

	row := model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
		Placement:    req.Placement,
		Status:       model.UserStatusActive,
	}
	if err := h.db.Create(&row).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Update handles PUT /users/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	var row model.User
	err := h.db.Where("id = ? AND deleted_at IS NULL", c.Param("id")).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("user not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	if req.Password != nil {
		if len(*req.Password) < 8 {
			httpx.FailErr(c, httpx.ErrParamInvalid("password too short"))
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("failed to hash password", err))
			return
		}
		row.PasswordHash = hash
	}
	if req.Name != nil {
		row.Name = *req.Name
	}
	if req.Email != nil {
		row.Email = *req.Email
	}
	if req.Role != nil {
		if *req.Role != model.UserRoleAdmin && *req.Role != model.UserRoleStaff {
			httpx.FailErr(c, httpx.ErrParamInvalid("unknown role"))
			return
		}
		row.Role = *req.Role
	}
	if req.Placement != nil {
		row.Placement = req.Placement
	}
	if req.Status != nil {
		if *req.Status != model.UserStatusActive && *req.Status != model.UserStatusDisabled {
			httpx.FailErr(c, httpx.ErrParamInvalid("unknown status"))
			return
		}
		row.Status = *req.Status
	}

	if err := h.db.Save(&row).Error; err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}
	httpx.OK(c, row)
}

// Delete handles DELETE /users/:id, soft-deleting the account so inspection
// history keeps its inspector reference
func (h *Handler) Delete(c *gin.Context) {
	res := h.db.Model(&model.User{}).
		Where("id = ? AND deleted_at IS NULL", c.Param("id")).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("user not found"))
		return
	}
	httpx.OKMsg(c, "user deleted", nil)
}

// Restore handles POST /users/:id/restore, undoing a soft delete
func (h *Handler) Restore(c *gin.Context) {
	res := h.db.Model(&model.User{}).
		Where("id = ? AND deleted_at IS NOT NULL", c.Param("id")).
		Update("deleted_at", nil)
	if res.Error != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", res.Error))
		return
	}
	if res.RowsAffected == 0 {
		httpx.FailErr(c, httpx.ErrNotFound("user not found or not deleted"))
		return
	}
	httpx.OKMsg(c, "user restored", nil)
}
