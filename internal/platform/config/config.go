package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	DataEncryptionKey string
	Environment       string

	// SiteURL is the public base URL of this installation. It is used to
	// build verification links and to absolutize relative image references.
	SiteURL string

	// UploadBaseURL and UploadBaseDir describe the installation's upload
	// tree so the image resolver can rewrite upload URLs to local paths.
	// SiteRootDir backs site-relative references that are not under the
	// upload tree.
	UploadBaseURL string
	UploadBaseDir string
	SiteRootDir   string

	// StorageDir is where generated certificates are written.
	StorageDir string

	PDFEngine  string
	PDFTimeout time.Duration

	AdminEmail    string
	AdminPassword string

	EmailFrom     string
	EmailFromName string
	EmailEnabled  bool
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPUseTLS    bool

	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DataEncryptionKey:  getEnv("DATA_ENCRYPTION_KEY", ""),
		Environment:        getEnv("APP_ENV", "development"),
		SiteURL:            strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		UploadBaseURL:      strings.TrimRight(getEnv("UPLOAD_BASE_URL", ""), "/"),
		UploadBaseDir:      getEnv("UPLOAD_BASE_DIR", "storage/uploads"),
		SiteRootDir:        getEnv("SITE_ROOT_DIR", "storage"),
		StorageDir:         getEnv("STORAGE_DIR", "storage/noc-pdfs"),
		PDFEngine:          getEnv("PDF_ENGINE", "chrome"),
		PDFTimeout:         getEnvDuration("PDF_TIMEOUT", 30*time.Second),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@example.com"),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "HR Department"),
		EmailEnabled:       getEnvBool("EMAIL_ENABLED", false),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           getEnv("SMTP_USER", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", true),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.AdminPassword) == "" {
			return fmt.Errorf("ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.PDFEngine != "chrome" && c.PDFEngine != "basic" {
		return fmt.Errorf("PDF_ENGINE must be chrome or basic")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}
