package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classifieds/pkg/config"
	"classifieds/pkg/jwt"
	"classifieds/pkg/logger"
	"classifieds/pkg/metrics"
	"classifieds/pkg/middleware"
	"classifieds/pkg/queue"
	listingHTTP "classifieds/services/listing/internal/controller/http"
	"classifieds/services/listing/internal/repo/cache"
	"classifieds/services/listing/internal/repo/persistent"
	"classifieds/services/listing/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "classifieds/services/listing/docs" // Swagger docs
)

// Infra holds the external connections the service runs on. Only DB is
// required.
type Infra struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Media     usecase.MediaStore
	Publisher queue.Publisher
	Metrics   *metrics.Manager
}

// UseCases builds every use case over the given infrastructure.
type UseCases struct {
	Listings   usecase.ListingUseCase
	Images     usecase.ImageUseCase
	Categories usecase.CategoryUseCase
	Search     usecase.SearchUseCase
	Lifecycle  usecase.LifecycleUseCase
	Engagement usecase.EngagementUseCase
}

func NewUseCases(cfg *config.Config, log *logger.Logger, infra Infra) *UseCases {
	listingRepo := persistent.NewListingRepository(infra.DB)

	deps := usecase.Deps{
		Publisher: infra.Publisher,
		Metrics:   infra.Metrics,
		Logger:    log,
	}
	if infra.Redis != nil {
		deps.Cache = cache.NewListingCache(infra.Redis, cfg.CacheTTL)
	}
	opts := usecase.Options{
		QueryTimeout: cfg.DBQueryTimeout,
		ListingTTL:   time.Duration(cfg.ListingTTLDays) * 24 * time.Hour,
	}

	return &UseCases{
		Listings:   usecase.NewListingUseCase(listingRepo, deps, opts),
		Images:     usecase.NewImageUseCase(persistent.NewImageRepository(infra.DB), listingRepo, infra.Media, deps, opts),
		Categories: usecase.NewCategoryUseCase(persistent.NewCategoryRepository(infra.DB), deps, opts),
		Search:     usecase.NewSearchUseCase(persistent.NewSearchRepository(infra.DB), deps, opts),
		Lifecycle:  usecase.NewLifecycleUseCase(listingRepo, deps, opts),
		Engagement: usecase.NewEngagementUseCase(persistent.NewEngagementRepository(infra.DB), deps, opts),
	}
}

func NewRouter(cfg *config.Config, log *logger.Logger, infra Infra, uc *UseCases) *gin.Engine {
	jwtService := jwt.NewService(cfg.JWTSecret)

	handler := listingHTTP.NewListingHandler(
		uc.Listings,
		uc.Images,
		uc.Categories,
		uc.Search,
		uc.Lifecycle,
		uc.Engagement,
		log,
	)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies %v, trusting none: %v", cfg.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(infra.Metrics.Middleware())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if infra.Metrics != nil {
		r.GET("/metrics", infra.Metrics.Handler())
	}

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimit := middleware.RateLimitMiddleware(infra.Redis, cfg.RateLimitPerMinute, time.Minute)

	public := r.Group("/api/v1")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	public.Use(rateLimit)
	{
		public.GET("/listings", handler.SearchListings)
		public.GET("/listings/nearby", handler.NearbyListings)
		public.GET("/listings/slug/:slug", handler.GetListingBySlug)
		public.GET("/listings/:id", handler.GetListing)
		public.GET("/listings/:id/images", handler.GetImages)
		public.GET("/categories", handler.ListCategories)
		public.GET("/categories/tree", handler.CategoryTree)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(rateLimit)
	{
		api.POST("/listings", handler.CreateListing)
		api.PUT("/listings/:id", handler.UpdateListing)
		api.DELETE("/listings/:id", handler.DeleteListing)

		api.POST("/listings/:id/images", handler.AddImage)
		api.PUT("/listings/:id/images/:image_id/primary", handler.SetPrimaryImage)
		api.DELETE("/listings/:id/images/:image_id", handler.DeleteImage)

		api.POST("/listings/:id/sold", handler.MarkSold)
		api.POST("/listings/:id/pause", handler.PauseListing)
		api.POST("/listings/:id/resume", handler.ResumeListing)
		api.POST("/listings/:id/renew", handler.RenewListing)

		api.POST("/listings/:id/favorite", handler.AddFavorite)
		api.DELETE("/listings/:id/favorite", handler.RemoveFavorite)

		api.GET("/me/listings", handler.MyListings)
		api.GET("/me/favorites", handler.MyFavorites)
		api.GET("/me/stats", handler.MyStats)
	}

	moderation := api.Group("")
	moderation.Use(middleware.RequireRole(jwt.RoleModerator))
	{
		moderation.GET("/moderation/pending", handler.PendingListings)
		moderation.POST("/moderation/:id/approve", handler.ApproveListing)
		moderation.POST("/moderation/:id/reject", handler.RejectListing)
		moderation.POST("/moderation/:id/feature", handler.FeatureListing)
		moderation.POST("/moderation/:id/renew", handler.ForceRenewListing)

		moderation.POST("/categories", handler.CreateCategory)
		moderation.PUT("/categories/:id/parent", handler.SetCategoryParent)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, infra Infra) {
	uc := NewUseCases(cfg, log, infra)
	r := NewRouter(cfg, log, infra, uc)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Listing service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down listing service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain requests before closing connections
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if infra.Publisher != nil {
		if err := infra.Publisher.Close(); err != nil {
			log.Error("Error closing event publisher: %v", err)
		}
	}

	if infra.Redis != nil {
		if err := infra.Redis.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := infra.DB.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	log.Info("Listing service exited")
}
