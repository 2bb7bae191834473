package routes

import (
	"time"

	"shopdb-backend/handlers"
	"shopdb-backend/middleware"
	"shopdb-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storageClient storage.Client) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: storageClient}
	bannerHandler := &handlers.BannerHandler{DB: db, Storage: storageClient}

	// Credential endpoints get a per-IP rate limit
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Category routes; the wildcard lets identifiers carry full-slug
		// paths like laptops/gaming-laptops
		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/*identifier", categoryHandler.GetCategory)

		// Product routes
		api.GET("/products", productHandler.GetProducts)
		api.GET("/products/:id", productHandler.GetProduct)

		// Banner routes
		api.GET("/banners", bannerHandler.GetBanners)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/verify", authHandler.VerifyToken)
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/*identifier", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/*identifier", categoryHandler.DeleteCategory)

		// Product management
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.POST("/products/:id/restore", productHandler.RestoreProduct)
		admin.GET("/products/deleted", productHandler.GetDeletedProducts)

		// Banner management
		admin.POST("/banners", bannerHandler.CreateBanner)
		admin.PUT("/banners/:id", bannerHandler.UpdateBanner)
		admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
