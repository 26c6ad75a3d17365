package main

import (
	"classifieds/pkg/config"
	"classifieds/pkg/logger"
	app "classifieds/services/listing/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Listing Service API
// @version         1.0
// @description     Classified listings: listings, images, categories, search, moderation and engagement
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Validate JWT_SECRET for services that use JWT
	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	gin.SetMode(gin.ReleaseMode)

	// Migrations are handled by goose - see cmd/migrate/main.go
	infra, err := app.NewInfra(cfg, log)
	if err != nil {
		log.Error("Failed to initialize infrastructure: %v", err)
		panic(err)
	}

	app.Run(cfg, log, infra)
}
