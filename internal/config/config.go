package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	AutoMigrate bool
	JWTSecret   string
	JWTExpiry   time.Duration

	// SMTP transport; leaving SMTPHost empty selects the logging mailer.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// MailerSend transport; takes precedence over SMTP when the key is set.
	MailerSendAPIKey   string
	MailerSendFrom     string
	MailerSendFromName string

	// Object storage; leaving StorageURL empty selects the local disk store.
	StorageURL    string
	StorageKey    string
	StorageBucket string
	UploadDir     string
	PublicBaseURL string
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "5000"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/eventhub?parseTime=true"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "") == "true",
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   7 * 24 * time.Hour,

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		MailerSendAPIKey:   os.Getenv("MAILERSEND_API_KEY"),
		MailerSendFrom:     os.Getenv("MAILERSEND_EMAIL"),
		MailerSendFromName: getEnv("MAILERSEND_FROM_NAME", "EventHub"),

		StorageURL:    os.Getenv("STORAGE_URL"),
		StorageKey:    os.Getenv("STORAGE_SERVICE_KEY"),
		StorageBucket: getEnv("STORAGE_BUCKET", "events"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
