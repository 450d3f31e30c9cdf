package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const appDirName = "screenshot-vault"

// Config holds all configuration for the application.
type Config struct {
	DBPath        string
	ScreenshotDir string
	APIPort       string

	LogLevel  slog.Level
	LogFormat string

	OpenAIBaseURL string
	OpenAIModel   string
	OpenAIAPIKey  string
	// OpenAIRequestsPerMinute bounds cloud extraction calls. Zero disables throttling.
	OpenAIRequestsPerMinute int

	// BatchSize overrides the orchestrator batch size. Zero selects it automatically.
	BatchSize   int
	OCRLanguage string

	ScanInterval time.Duration
	WatchFolder  bool
	AutoProcess  bool
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the ones that must parse.
// If a .env file exists in the current directory or a parent directory, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:        getEnv("DB_PATH", DefaultDBPath()),
		ScreenshotDir: getEnv("SCREENSHOT_DIR", ""),
		APIPort:       getEnv("API_PORT", "9000"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		OpenAIBaseURL: strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com"), "/"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-5.2"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OCRLanguage:   getEnv("OCR_LANGUAGE", "eng"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.OpenAIRequestsPerMinute, err = getEnvInt("OPENAI_RPM", 30); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = getEnvInt("BATCH_SIZE", 0); err != nil {
		return nil, err
	}

	interval, err := time.ParseDuration(getEnv("SCAN_INTERVAL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("SCAN_INTERVAL must be a valid duration: %w", err)
	}
	if interval < 0 {
		return nil, fmt.Errorf("SCAN_INTERVAL must not be negative")
	}
	cfg.ScanInterval = interval

	if cfg.WatchFolder, err = getEnvBool("WATCH_FOLDER", true); err != nil {
		return nil, err
	}
	if cfg.AutoProcess, err = getEnvBool("AUTO_PROCESS", false); err != nil {
		return nil, err
	}

	if cfg.ScreenshotDir != "" {
		abs, err := filepath.Abs(cfg.ScreenshotDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve SCREENSHOT_DIR: %w", err)
		}
		cfg.ScreenshotDir = abs
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// DefaultDBPath returns the database location under the XDG data directory.
func DefaultDBPath() string {
	dataHome := xdg.DataHome
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "data", appDirName+".db")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDirName, appDirName+".db")
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}
