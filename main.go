package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-app/blog"
	"blog-app/config"
	"blog-app/db"
	"blog-app/events"
	"blog-app/media"
	"blog-app/routes"
	"blog-app/sessions"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	gormDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid database configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	sessionStore := openSessionStore(ctx, cfg, gormDB)
	images := openImageStore(ctx, &cfg)
	cancel()

	var publisher blog.EventPublisher = events.Nop{}
	if cfg.NatsURL != "" {
		conn, err := events.Connect(cfg.NatsURL)
		if err != nil {
			utils.LogError(err, "Error connecting to NATS, events disabled")
		} else {
			defer conn.Drain()
			publisher = events.NewNatsPublisher(conn)
			utils.LogSuccess("Publishing events to " + cfg.NatsURL)
		}
	}

	if cfg.UsesDefaultSecret() {
		utils.LogWarning("SESSION_SECRET is not set, using the development default")
	}

	r := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		Blog:     blog.NewService(db.NewStore(gormDB), images, blog.WithEvents(publisher)),
		Sessions: sessions.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionMaxAge),
		Database: func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.LogInfo("Server listening on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.WithError(err).Fatal("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Forced shutdown")
	}
}

func openSessionStore(ctx context.Context, cfg config.Config, gormDB *gorm.DB) sessions.Store {
	switch cfg.SessionStore {
	case config.SessionStoreDatabase:
		utils.LogInfo("Sessions stored in the database")
		return sessions.NewGormStore(gormDB)
	case config.SessionStoreRedis:
		client, err := sessions.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			utils.LogError(err, "Error connecting to Redis, falling back to in-memory sessions")
			return sessions.NewMemoryStore()
		}
		utils.LogInfo("Sessions stored in Redis")
		return sessions.NewRedisStore(client)
	default:
		return sessions.NewMemoryStore()
	}
}

// openImageStore switches cfg back to local storage when Cloudinary is unusable,
// so the router serves the upload directory.
func openImageStore(ctx context.Context, cfg *config.Config) blog.ImageStore {
	if cfg.MediaBackend == config.MediaCloudinary {
		storage, err := media.NewCloudinaryStorage(ctx, cfg.Cloudinary)
		if err == nil {
			utils.LogSuccess("Images stored on Cloudinary")
			return storage
		}
		utils.LogError(err, "Cloudinary initialisation failed, storing images locally")
		cfg.MediaBackend = config.MediaLocal
	}

	storage, err := media.NewLocalStorage(cfg.UploadDir, "/uploads")
	if err != nil {
		utils.Logger.WithError(err).Fatal("Cannot prepare upload directory")
	}
	return storage
}
