package main

import (
	"log"
	"os"

	v1 "go_assetdb/api/v1"
	"go_assetdb/internal/auth"
	"go_assetdb/internal/cache"
	"go_assetdb/internal/config"
	"go_assetdb/internal/db"
	"go_assetdb/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration. CONFIG_INI points at an INI file; environment
	// variables override its values either way.
	var (
		cfg *config.Config
		err error
	)
	if iniPath := os.Getenv("CONFIG_INI"); iniPath != "" {
		cfg, err = config.LoadFromINI(iniPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("✓ Configuration loaded")

	// 2. Initialize database
	if err := db.Init(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.GetDB()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("✓ Migrations applied")
	}

	// 3. Initialize Redis (optional, stats caching only)
	if cfg.Redis.Enabled {
		if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		defer cache.Close()
	}

	// 4. Initialize JWT
	auth.InitJWT(cfg.JWT.Secret)

	// 5. Initialize Socket.IO server
	if err := ws.InitServer(); err != nil {
		log.Fatalf("Failed to initialize websocket server: %v", err)
	}

	// 6. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Socket.IO endpoint (JWT validated during handshake)
	wsHandler := ws.WrapWithAuth(ws.Server)
	r.GET("/socket.io/*any", gin.WrapH(wsHandler))
	r.POST("/socket.io/*any", gin.WrapH(wsHandler))

	// Setup API v1 routes
	v1.SetupRouter(r, db.GetDB(), cfg)

	log.Printf("✓ Server starting on %s", cfg.HTTPAddr)

	// Start server
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
