package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Contact  ContactConfig  `mapstructure:"contact"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            string   `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	FrontendOrigins []string `mapstructure:"frontend_origins"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN prefers a full connection URL when provided (managed hosting sets one),
// falling back to individual vars for local dev.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type ContactConfig struct {
	WhatsAppNumber string `mapstructure:"whatsapp_number"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the environment, with an optional .env file
// for local development. Keys map to env vars via SERVER_PORT-style names.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "indiatravel")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.timeout_seconds", 30)
	v.SetDefault("contact.whatsapp_number", "919876543210")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// AutomaticEnv alone does not surface env-only keys through Unmarshal;
	// bind the ones operators actually set.
	for _, key := range []string{
		"server.port", "server.mode", "server.frontend_origins",
		"database.url", "database.host", "database.port", "database.user",
		"database.password", "database.name", "database.sslmode",
		"gemini.api_key", "gemini.model", "gemini.base_url", "gemini.timeout_seconds",
		"contact.whatsapp_number",
		"logging.level", "logging.format",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Gemini.TimeoutSeconds <= 0 {
		cfg.Gemini.TimeoutSeconds = 30
	}
	return &cfg, nil
}
