package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "keyboard cat"

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// Media backends.
const (
	MediaLocal      = "local"
	MediaCloudinary = "cloudinary"
)

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Configured reports whether every credential needed to reach the media host is set.
func (c Cloudinary) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Config is assembled once at startup and handed to every layer that needs it.
type Config struct {
	Port               string
	DatabaseURL        string
	SessionSecret      string
	SessionStore       string
	SessionMaxAge      time.Duration
	RedisURL           string
	MediaBackend       string
	UploadDir          string
	Cloudinary         Cloudinary
	NatsURL            string
	CorsAllowedOrigins []string
	GinMode            string
	LogLevel           string
}

// Load reads the .env file when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   getEnv("DB_URL", "host=localhost user=postgres dbname=blog sslmode=disable"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionStore:  strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		SessionMaxAge: getDuration("SESSION_MAX_AGE", 24*time.Hour),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		MediaBackend:  strings.ToLower(getEnv("MEDIA_BACKEND", MediaLocal)),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		Cloudinary: Cloudinary{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "blog_posts"),
		},
		NatsURL:            getEnv("NATS_URL", ""),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		GinMode:            getEnv("GIN_MODE", "release"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// UsesDefaultSecret is true when SESSION_SECRET was left unset.
func (c Config) UsesDefaultSecret() bool {
	return c.SessionSecret == defaultSessionSecret
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
