package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SMTPConfig holds the mail-submission settings used for alert delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	ModelPath    string
	ScalerPath   string
	WebDir       string

	// Alerting. AlertEmail empty disables email alerting entirely.
	AlertEmail   string
	SMTP         SMTPConfig
	ShoutrrrURLs []string
}

// Load reads env vars (honoring a local .env file when present) and falls
// back to defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:  getEnv("GWD_ENV", "development"),
		HTTPPort:     getEnv("GWD_HTTP_PORT", "5000"),
		DatabasePath: getEnv("GWD_DB_PATH", filepath.Join("data", "predictions_history.db")),
		ModelPath:    getEnv("GWD_MODEL_PATH", filepath.Join("model", "final_isolation_forest_model.json")),
		ScalerPath:   getEnv("GWD_SCALER_PATH", filepath.Join("model", "scaler.json")),
		WebDir:       getEnv("GWD_WEB_DIR", "web"),
		AlertEmail:   os.Getenv("ALERT_EMAIL"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Sender:   os.Getenv("EMAIL_SENDER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
		},
		ShoutrrrURLs: splitList(os.Getenv("ALERT_SHOUTRRR_URLS")),
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return fallback
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
