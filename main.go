package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/auth"
	"inkpress/config"
	"inkpress/database"
	"inkpress/handlers"
	"inkpress/logger"
	"inkpress/routes"
	"inkpress/storage"
	"inkpress/views"

	"github.com/gin-gonic/gin"
)

const connectAttempts = 3

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to load configuration")
	}
	logger.Init(cfg.IsProduction())
	logger.Log.WithField("env", cfg.Env).Info("🚀 Starting blog server...")

	for _, warning := range cfg.Warnings() {
		logger.Log.Warn("⚠️ " + warning)
	}

	// ===== GIN MODE =====
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// ===== MONGODB =====
	conn := database.NewConnector(cfg.MongoURI, cfg.MongoDatabase)
	warmUp(conn)

	// ===== MEDIA =====
	media, err := storage.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to configure media storage")
	}
	logger.Log.WithField("backend", cfg.MediaBackend).Info("✅ Media storage ready")

	// ===== AUTH =====
	creds, err := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to prepare admin credentials")
	}
	sessions := auth.NewSessions(cfg.IsProduction(), cfg.SessionSigningKey)

	renderer, err := views.New()
	if err != nil {
		logger.Log.WithError(err).Fatal("❌ Failed to parse templates")
	}

	// ===== ROUTER =====
	h := handlers.New(handlers.Deps{
		Posts:         database.NewPostRepository(conn),
		Media:         media,
		Credentials:   creds,
		Sessions:      sessions,
		DB:            conn,
		MongoURI:      conn.URI(),
		Views:         renderer,
		DefaultAuthor: cfg.DefaultAuthor,
	})
	router := routes.SetupRouter(cfg, h, sessions)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infof("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("❌ Server error")
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("❌ Forced shutdown")
	}
	if err := conn.Disconnect(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("❌ MongoDB disconnect failed")
	}

	logger.Log.Info("👋 Server stopped gracefully")
}

// warmUp tries to open the MongoDB connection before serving. Failure is not
// fatal: requests connect lazily and the public list degrades without it.
func warmUp(conn *database.Connector) {
	if conn.URI() == "" {
		return
	}
	for i := 1; i <= connectAttempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := conn.Ping(ctx)
		cancel()
		if err == nil {
			logger.Log.Info("✅ MongoDB ping successful")
			return
		}
		logger.Log.WithError(err).Warnf("❌ MongoDB connection attempt %d failed", i)
		if i < connectAttempts {
			time.Sleep(2 * time.Second)
		}
	}
	logger.Log.Warn("⚠️ Starting without a database connection")
}
