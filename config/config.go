package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment at
// startup.
type Config struct {
	Port             string
	DBPath           string
	InvoiceUploadDir string
	CORSOrigins      []string
}

// Load reads a .env file when present, then the process environment, falling
// back to development defaults.
func Load() *Config {
	// Missing .env is fine; env vars may come from the deployment instead.
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "./data/spendbook.db"),
		InvoiceUploadDir: getEnv("INVOICE_UPLOAD_DIR", "./data/invoices"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS",
			"http://localhost:5173,http://localhost:3000")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
