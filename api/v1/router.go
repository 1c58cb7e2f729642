package v1

import (
	"time"

	"go_assetdb/api/v1/assetaudits"
	"go_assetdb/api/v1/assets"
	"go_assetdb/api/v1/auth"
	"go_assetdb/api/v1/inspections"
	"go_assetdb/api/v1/locationdetails"
	"go_assetdb/api/v1/locations"
	"go_assetdb/api/v1/middleware"
	"go_assetdb/api/v1/projectcodes"
	"go_assetdb/api/v1/stats"
	"go_assetdb/api/v1/users"
	"go_assetdb/internal/config"
	"go_assetdb/internal/httpx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", auth.LoginHandler(db, cfg))
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/me", meHandler)

			// Assets routes
			assetsHandler := assets.NewHandler(db)
			assetsGroup := protected.Group("/assets")
			{
				assetsGroup.GET("", assetsHandler.List)
				assetsGroup.POST("", assetsHandler.Create)
				assetsGroup.GET("/by-asset-number/:assetNo", assetsHandler.GetByAssetNo)
				assetsGroup.GET("/versions/:assetNo", assetsHandler.ListVersions)
				assetsGroup.GET("/:id", assetsHandler.Get)
				assetsGroup.PUT("/:id", assetsHandler.Update)
				assetsGroup.DELETE("/:id", assetsHandler.Delete)
			}

			// Location routes
			locationsHandler := locations.NewHandler(db)
			locationsGroup := protected.Group("/locations")
			{
				locationsGroup.GET("", locationsHandler.List)
				locationsGroup.POST("", locationsHandler.Create)
				locationsGroup.PUT("/:id", locationsHandler.Update)
				locationsGroup.DELETE("/:id", locationsHandler.Delete)
			}

			// Location detail routes
			detailsHandler := locationdetails.NewHandler(db)
			detailsGroup := protected.Group("/location-details")
			{
				detailsGroup.GET("", detailsHandler.List)
				detailsGroup.POST("", detailsHandler.Create)
				detailsGroup.PUT("/:id", detailsHandler.Update)
				detailsGroup.DELETE("/:id", detailsHandler.Delete)
			}

			// Project code routes
			codesHandler := projectcodes.NewHandler(db)
			codesGroup := protected.Group("/project-codes")
			{
				codesGroup.GET("", codesHandler.List)
				codesGroup.POST("", codesHandler.Create)
				codesGroup.PUT("/:id", codesHandler.Update)
				codesGroup.DELETE("/:id", codesHandler.Delete)
			}

			// Asset audit routes
			auditsHandler := assetaudits.NewHandler(db)
			auditsGroup := protected.Group("/asset-audits")
			{
				auditsGroup.GET("", auditsHandler.List)
				auditsGroup.POST("", auditsHandler.Create)
				auditsGroup.GET("/:id", auditsHandler.Get)
				auditsGroup.PUT("/:id", auditsHandler.Update)
				auditsGroup.DELETE("/:id", auditsHandler.Delete)
			}

			// Inspection routes
			inspectionsHandler := inspections.NewHandler(db)
			inspectionsGroup := protected.Group("/inspections")
			{
				inspectionsGroup.GET("", inspectionsHandler.List)
				inspectionsGroup.POST("", inspectionsHandler.Create)
				inspectionsGroup.GET("/:id", inspectionsHandler.Get)
				inspectionsGroup.PUT("/:id", inspectionsHandler.Update)
				inspectionsGroup.DELETE("/:id", inspectionsHandler.Delete)
				inspectionsGroup.POST("/:id/items", inspectionsHandler.AddItem)
				inspectionsGroup.DELETE("/:id/items/:itemId", inspectionsHandler.RemoveItem)
			}

			// Statistics routes
			statsHandler := stats.NewHandler(db, time.Duration(cfg.Stats.CacheTTLSec)*time.Second)
			statsGroup := protected.Group("/stats")
			{
				statsGroup.GET("/overview", statsHandler.Overview)
				statsGroup.GET("/by-category", statsHandler.ByCategory)
				statsGroup.GET("/by-location", statsHandler.ByLocation)
			}

			// User management routes (admin only)
			usersHandler := users.NewHandler(db)
			usersGroup := protected.Group("/users")
			usersGroup.Use(middleware.AdminRequired())
			{
				usersGroup.GET("", usersHandler.List)
				usersGroup.POST("", usersHandler.Create)
				usersGroup.GET("/:id", usersHandler.Get)
				usersGroup.PUT("/:id", usersHandler.Update)
				usersGroup.DELETE("/:id", usersHandler.Delete)
				usersGroup.POST("/:id/restore", usersHandler.Restore)
			}
		}
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// meHandler returns current user information
func meHandler(c *gin.Context) {
	uid, _ := c.Get("uid")
	username, _ := c.Get("username")
	name, _ := c.Get("name")
	role, _ := c.Get("role")

	httpx.OK(c, gin.H{
		"uid":      uid,
		"username": username,
		"name":     name,
		"role":     role,
	})
}
