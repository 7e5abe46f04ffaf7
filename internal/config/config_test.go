package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("AUTH_IDENTIFIER", "operator")
	t.Setenv("AUTH_SECRET", "hunter2")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.Port)
	assert.Equal(t, "/api/v0", cfg.API.BasePath)
	assert.Equal(t, "snapsentinel", cfg.Kafka.GroupID)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "Local", cfg.Format.Timezone)
	assert.Equal(t, "2006-01-02", cfg.Format.DateLayout)
	assert.Equal(t, "15:04:05", cfg.Format.TimeLayout)
	assert.Equal(t, 1, cfg.Telegram.RatePerSecond)
}

func TestLoadReportsMissingRequired(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("AUTH_IDENTIFIER", "")
	t.Setenv("AUTH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKER")
	assert.Contains(t, err.Error(), "AUTH_IDENTIFIER")
}

func TestLoadDoesNotRequireAlertsURL(t *testing.T) {
	// A missing feed endpoint must surface later as a fetch-cycle
	// configuration error, never as a boot failure.
	setRequired(t)
	t.Setenv("ALERTS_API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Alerts.APIURL)
}

func TestLoadReadsOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ALERTS_API_URL", "http://cameras.local/alerts")
	t.Setenv("API_PORT", ":9000")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://cameras.local/alerts", cfg.Alerts.APIURL)
	assert.Equal(t, ":9000", cfg.API.Port)
	assert.Equal(t, "UTC", cfg.Format.Timezone)
	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
}
