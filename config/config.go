package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bracket-pool-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Email    EmailConfig    `json:"email"`
	Auth     AuthConfig     `json:"auth"`
	App      AppConfig      `json:"app"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	BehindProxy bool   `json:"behind_proxy"`
	BaseURL     string `json:"base_url"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
	LogDir      string `json:"log_dir"`
	EnableFile  bool   `json:"enable_file"`
}

// EmailConfig holds SMTP configuration.
type EmailConfig struct {
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     string `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"smtp_password"`
	FromEmail    string `json:"from_email"`
	FromName     string `json:"from_name"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	CurrentSeason int  `json:"current_season"`
	IsDevelopment bool `json:"is_development"`
}

// Load loads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine; env vars may come from the environment.
		logging.Debugf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			BehindProxy: getBoolEnv("BEHIND_PROXY", false),
			BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", "bracketpool"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bracket_pool"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "debug"),
			Prefix:      getEnv("LOG_PREFIX", "bracket-pool"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
			LogDir:      getEnv("LOG_DIR", "./logs"),
			EnableFile:  getBoolEnv("LOG_FILE", false),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", ""),
			FromName:     getEnv("FROM_NAME", "Bracket Pool"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		},
		App: AppConfig{
			CurrentSeason: getIntEnv("CURRENT_SEASON", 2026),
			IsDevelopment: isDevelopment,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for required fields and sensible values.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == "change-me-in-production" && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.App.CurrentSeason < 2000 || c.App.CurrentSeason > 2100 {
		return fmt.Errorf("current season must be a plausible year, got: %d", c.App.CurrentSeason)
	}

	return nil
}

// IsEmailConfigured returns true if the email service can send mail.
func (c *Config) IsEmailConfigured() bool {
	return c.Email.SMTPHost != "" &&
		c.Email.SMTPUsername != "" &&
		c.Email.SMTPPassword != "" &&
		c.Email.FromEmail != ""
}

// GetServerAddress returns the host:port the server binds to.
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the active configuration without sensitive data.
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Behind Proxy: %t, Environment: %s)",
		c.GetServerAddress(), c.Server.BehindProxy, c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t, File=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor, c.Logging.EnableFile)
	logging.Infof("Email: Configured=%t, Host=%s, From=%s",
		c.IsEmailConfigured(), c.Email.SMTPHost, c.Email.FromEmail)
	logging.Infof("App: Season=%d, Development=%t", c.App.CurrentSeason, c.App.IsDevelopment)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
