package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Host: "0.0.0.0"},
		Database: DatabaseConfig{
			Host: "localhost", Port: "27017", Database: "bracket_pool",
		},
		Auth: AuthConfig{JWTSecret: "a-real-secret"},
		App:  AppConfig{CurrentSeason: 2026, IsDevelopment: true},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing server port", func(c *Config) { c.Server.Port = "" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db port", func(c *Config) { c.Database.Port = "" }},
		{"missing db name", func(c *Config) { c.Database.Database = "" }},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"implausible season", func(c *Config) { c.App.CurrentSeason = 1950 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateDefaultSecretRejectedInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "change-me-in-production"

	cfg.App.IsDevelopment = true
	assert.NoError(t, cfg.Validate())

	cfg.App.IsDevelopment = false
	assert.Error(t, cfg.Validate())
}

func TestGetServerAddress(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
}

func TestIsEmailConfigured(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.IsEmailConfigured())

	cfg.Email = EmailConfig{
		SMTPHost: "smtp.example.com", SMTPUsername: "u",
		SMTPPassword: "p", FromEmail: "noreply@example.com",
	}
	assert.True(t, cfg.IsEmailConfigured())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", getEnv("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_STR_MISSING", "fallback"))

	t.Setenv("TEST_BOOL", "yes")
	assert.True(t, getBoolEnv("TEST_BOOL", false))
	t.Setenv("TEST_BOOL", "off")
	assert.False(t, getBoolEnv("TEST_BOOL", true))
	t.Setenv("TEST_BOOL", "garbage")
	assert.True(t, getBoolEnv("TEST_BOOL", true))

	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getIntEnv("TEST_INT", 7))
	t.Setenv("TEST_INT", "nope")
	assert.Equal(t, 7, getIntEnv("TEST_INT", 7))

	t.Setenv("TEST_DUR", "30s")
	assert.Equal(t, 30*time.Second, getDurationEnv("TEST_DUR", time.Minute))
	t.Setenv("TEST_DUR", "bad")
	assert.Equal(t, time.Minute, getDurationEnv("TEST_DUR", time.Minute))
}
