package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Alerts struct {
		// APIURL is the detection endpoint serving {items: [...]}. It is
		// deliberately not validated here: a missing URL must surface as a
		// configuration error on the first fetch cycle, not as a boot failure.
		APIURL string
	}
	Kafka struct {
		// Broker to consume the fixed all_devices broadcast topic from.
		Broker  string
		GroupID string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Format struct {
		Timezone   string
		DateLayout string
		TimeLayout string
	}
	Telegram struct {
		BotToken      string
		ChatID        int64
		RatePerSecond int
	}
	Auth struct {
		Identifier string
		Secret     string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Alert feed settings
	cfg.Alerts.APIURL = os.Getenv("ALERTS_API_URL")

	// Kafka settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Display formatting for normalized alerts
	cfg.Format.Timezone = os.Getenv("DISPLAY_TIMEZONE")
	cfg.Format.DateLayout = os.Getenv("DISPLAY_DATE_LAYOUT")
	cfg.Format.TimeLayout = os.Getenv("DISPLAY_TIME_LAYOUT")

	// Telegram banner settings (optional)
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_PER_SECOND")); err == nil {
		cfg.Telegram.RatePerSecond = r
	}

	// Session gate credentials
	cfg.Auth.Identifier = os.Getenv("AUTH_IDENTIFIER")
	cfg.Auth.Secret = os.Getenv("AUTH_SECRET")

	// Validate required settings
	missing := []string{}
	if cfg.Kafka.Broker == "" {
		missing = append(missing, "KAFKA_BROKER")
	}
	if cfg.Auth.Identifier == "" {
		missing = append(missing, "AUTH_IDENTIFIER")
	}
	if cfg.Auth.Secret == "" {
		missing = append(missing, "AUTH_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "snapsentinel"
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Format.Timezone == "" {
		cfg.Format.Timezone = "Local"
	}
	if cfg.Format.DateLayout == "" {
		cfg.Format.DateLayout = "2006-01-02"
	}
	if cfg.Format.TimeLayout == "" {
		cfg.Format.TimeLayout = "15:04:05"
	}
	if cfg.Telegram.RatePerSecond == 0 {
		cfg.Telegram.RatePerSecond = 1
	}

	return cfg, nil
}
