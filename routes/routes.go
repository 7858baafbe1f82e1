package routes

import (
	"net/http"
	"strings"
	"time"

	"inkpress/config"
	"inkpress/handlers"
	"inkpress/middleware"
	"inkpress/storage"
	"inkpress/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, h *handlers.Handler, sessions middleware.SessionValidator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Runs before routing so every page under /admin is covered.
	router.Use(middleware.AdminGuard(sessions))

	assets := http.FS(views.Static())
	router.StaticFS("/static", assets)
	router.GET("/profile_icon.png", func(c *gin.Context) {
		c.FileFromFS("profile_icon.png", assets)
	})
	if cfg.MediaBackend == storage.BackendLocal {
		router.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	// Reader pages
	router.GET("/", h.Home)
	router.GET("/blogs/:id", h.BlogDetail)
	router.GET("/about", h.About)
	router.GET("/login", h.LoginPage)

	// Admin console, guarded by AdminGuard above
	admin := router.Group(middleware.AdminPrefix)
	admin.GET("", h.AdminPage)
	admin.POST("/compose", h.Compose)

	// Public API
	api := router.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/blog", h.ListBlogs)
	api.POST("/login", h.Login)
	api.DELETE("/login", h.Logout)

	// Mutating API
	protected := router.Group("/api")
	protected.Use(middleware.RequireAdminAPI(sessions))
	protected.POST("/blog", h.CreateBlog)
	protected.PUT("/blog", h.UpdateBlog)
	protected.DELETE("/blog", h.DeleteBlog)
	protected.POST("/upload", h.UploadImage)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		h.NotFound(c)
	})

	return router
}
