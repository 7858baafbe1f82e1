package config

import (
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	ProductionEnv  = "production"
	DevelopmentEnv = "development"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Env  string `default:"development"`
	Port string `default:"8080"`

	MongoURI      string
	MongoDatabase string `default:"blog"`

	AdminUsername     string
	AdminPassword     string
	SessionSigningKey string
	DefaultAuthor     string `default:"Admin"`

	MediaBackend     string `default:"local"`
	UploadDir        string `default:"uploads"`
	UploadURLPrefix  string `default:"/uploads"`
	CloudinaryURL    string
	CloudinaryFolder string `default:"blog"`
	S3Bucket         string
	S3Region         string `default:"us-east-1"`

	CORSOrigins []string `default:"[\"http://localhost:3000\",\"http://localhost:8080\"]"`
}

// Load reads the .env cascade for the current environment and then the
// process environment into a Config.
func Load() (*Config, error) {
	env := runtimeEnv()
	loadDotEnvs(env)

	cfg := &Config{
		Env:               runtimeEnv(),
		Port:              os.Getenv("PORT"),
		MongoURI:          os.Getenv("MONGODB_URI"),
		MongoDatabase:     os.Getenv("MONGODB_DATABASE"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		SessionSigningKey: os.Getenv("SESSION_SIGNING_KEY"),
		DefaultAuthor:     os.Getenv("DEFAULT_AUTHOR"),
		MediaBackend:      strings.ToLower(os.Getenv("MEDIA_BACKEND")),
		UploadDir:         os.Getenv("UPLOAD_DIR"),
		UploadURLPrefix:   os.Getenv("UPLOAD_URL_PREFIX"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:  os.Getenv("CLOUDINARY_FOLDER"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          os.Getenv("S3_REGION"),
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "applying config defaults")
	}
	return cfg, nil
}

// IsProduction controls the cookie Secure attribute and gin's mode.
func (c *Config) IsProduction() bool {
	return c.Env == ProductionEnv
}

// Warnings lists settings that are missing but not fatal: the public list
// still degrades to an empty result without a database, and login simply
// never succeeds without admin secrets.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.MongoURI == "" {
		warnings = append(warnings, "MONGODB_URI is not set, blog storage is unavailable")
	}
	if c.AdminUsername == "" || c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_USERNAME or ADMIN_PASSWORD is not set, admin login is disabled")
	}
	switch c.MediaBackend {
	case "cloudinary":
		if c.CloudinaryURL == "" {
			warnings = append(warnings, "MEDIA_BACKEND=cloudinary but CLOUDINARY_URL is not set")
		}
	case "s3":
		if c.S3Bucket == "" {
			warnings = append(warnings, "MEDIA_BACKEND=s3 but S3_BUCKET is not set")
		}
	}
	return warnings
}

// runtimeEnv prefers APP_ENV and falls back to NODE_ENV for deployments that
// already export it.
func runtimeEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	if env := os.Getenv("NODE_ENV"); env != "" {
		return env
	}
	return DevelopmentEnv
}

// loadDotEnvs follows https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use.
// godotenv never overrides a variable that is already set, so the first file
// to define a key wins.
func loadDotEnvs(env string) {
	// .env.[env].local holds secrets and has the highest priority
	_ = godotenv.Load(".env." + env + ".local")
	if env != "test" {
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
