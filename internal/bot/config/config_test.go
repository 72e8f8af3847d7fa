package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.True(t, c.UseWebhook)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, 2, c.PrelaunchDays)
	assert.Equal(t, "memory", c.SessionBackend)
	assert.Equal(t, "data/usuarios.json", c.RosterPath)
	assert.NotEmpty(t, c.AdminIDs)
}

func TestLoadConfig_EnvOverlay(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("USE_WEBHOOK", "false")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/eventbot")
	t.Setenv("PRELAUNCH_DAYS", "5")
	t.Setenv("ADMIN_IDS", "1, 2,3")
	t.Setenv("WIFI_SSID", "Evento2025")

	c := LoadConfig()

	assert.Equal(t, "123:abc", c.BotToken)
	assert.False(t, c.UseWebhook)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, 5, c.PrelaunchDays)
	assert.Equal(t, []int64{1, 2, 3}, c.AdminIDs)
	assert.Contains(t, c.WifiMessage, "Evento2025", "ssid substituted into the template")
	require.NoError(t, c.Validate())
}

func TestLoadConfig_MalformedIntKeepsDefault(t *testing.T) {
	t.Setenv("PRELAUNCH_DAYS", "soon")
	c := LoadConfig()
	assert.Equal(t, 2, c.PrelaunchDays)
}

func TestValidate_FatalGaps(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")

	c.BotToken = "123:abc"
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	c.DatabaseURL = "postgres://localhost/eventbot"
	assert.NoError(t, c.Validate())
}

func TestWebhookURL(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.BotToken = "123:abc"

	assert.Empty(t, c.WebhookURL())
	assert.False(t, c.WebhookEnabled())

	c.WebhookHost = "https://bot.example.com/"
	assert.Equal(t, "https://bot.example.com/webhook/123:abc", c.WebhookURL())
	assert.True(t, c.WebhookEnabled())

	c.UseWebhook = false
	assert.False(t, c.WebhookEnabled())
}
