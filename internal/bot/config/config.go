// Package config handles runtime configuration for the bot: defaults
// overlaid with environment variables, plus the fatal startup checks.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds every recognized option.
//
// Fields:
//   - BotToken: Telegram bot credential. Required.
//   - UseWebhook / Port / WebhookHost: delivery mode. Webhook mode needs
//     both the switch and a public host; otherwise the bot polls.
//   - DatabaseURL: PostgreSQL DSN. Required.
//   - LaunchDate / PrelaunchDays / PrelaunchMessage: prelaunch gate.
//   - WifiSSID / WifiMessage: Wi-Fi notice; "{ssid}" in the template is
//     substituted at load time.
//   - AdminIDs: Telegram user IDs allowed to broadcast.
//   - RosterPath / DataDir: local credential roster and material files.
//   - SessionBackend / RedisURL: "memory" (default) or "redis".
type Config struct {
	BotToken         string
	UseWebhook       bool
	Port             int
	WebhookHost      string
	DatabaseURL      string
	LaunchDate       string
	PrelaunchDays    int
	PrelaunchMessage string
	EventName        string
	WifiSSID         string
	WifiMessage      string
	AdminIDs         []int64
	RosterPath       string
	DataDir          string
	SessionBackend   string
	RedisURL         string
}

// LoadDefaults populates Config with the values the bot ships with.
func (c *Config) LoadDefaults() {
	c.UseWebhook = true
	c.Port = 8080
	c.PrelaunchDays = 2
	c.PrelaunchMessage = "✨ El bot estará disponible 🔥 el día del evento. " +
		"⏳ Vuelve pronto y usa /start para comenzar. 🙌"
	c.EventName = "Bootcamp 2025 Bogotá"
	c.WifiSSID = "NombreDeRed"
	c.WifiMessage = "📶 *Wi-Fi del evento*\n\n• **Nombre de red (SSID):** `{ssid}`\n" +
		"• *La red es abierta (no necesita clave).*"
	c.AdminIDs = []int64{7710920544, 7560374352, 7837963996, 8465613365, 7724870185}
	c.RosterPath = "data/usuarios.json"
	c.DataDir = "data"
	c.SessionBackend = "memory"
}

// LoadConfig builds a Config from defaults overlaid with the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	cfg.WifiMessage = strings.ReplaceAll(cfg.WifiMessage, "{ssid}", cfg.WifiSSID)
	return cfg
}

func (c *Config) parseEnv() {
	c.BotToken = getEnv("BOT_TOKEN", c.BotToken)
	c.UseWebhook = strings.EqualFold(getEnv("USE_WEBHOOK", strconv.FormatBool(c.UseWebhook)), "true")
	c.Port = getEnvInt("PORT", c.Port)
	c.WebhookHost = getEnv("WEBHOOK_HOST", c.WebhookHost)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.LaunchDate = getEnv("LAUNCH_DATE", c.LaunchDate)
	c.PrelaunchDays = getEnvInt("PRELAUNCH_DAYS", c.PrelaunchDays)
	c.PrelaunchMessage = getEnv("PRELAUNCH_MESSAGE", c.PrelaunchMessage)
	c.EventName = getEnv("EVENT_NAME", c.EventName)
	c.WifiSSID = getEnv("WIFI_SSID", c.WifiSSID)
	c.WifiMessage = getEnv("WIFI_MESSAGE", c.WifiMessage)
	c.RosterPath = getEnv("ROSTER_PATH", c.RosterPath)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.SessionBackend = getEnv("SESSION_BACKEND", c.SessionBackend)
	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)

	if raw := os.Getenv("ADMIN_IDS"); raw != "" {
		if ids := parseAdminIDs(raw); len(ids) > 0 {
			c.AdminIDs = ids
		}
	}
}

// Validate enforces the fatal startup requirements: without a bot token or a
// datastore URL the process must not start.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("missing BOT_TOKEN")
	}
	if c.DatabaseURL == "" {
		return errors.New("missing DATABASE_URL")
	}
	return nil
}

// WebhookPath is token-scoped so only Telegram can guess it.
func (c *Config) WebhookPath() string {
	return "/webhook/" + c.BotToken
}

// WebhookURL is the public endpoint registered with the transport; empty
// when no public host is configured.
func (c *Config) WebhookURL() string {
	if c.WebhookHost == "" {
		return ""
	}
	return strings.TrimSuffix(c.WebhookHost, "/") + c.WebhookPath()
}

// WebhookEnabled reports whether webhook delivery is both switched on and
// reachable; everything else falls back to polling.
func (c *Config) WebhookEnabled() bool {
	return c.UseWebhook && c.WebhookURL() != ""
}

func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
