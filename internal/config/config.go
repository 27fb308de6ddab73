package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Log     LogConfig
	CORS    CORSConfig
	Pricing PricingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PricingConfig holds margin and financial cache settings.
type PricingConfig struct {
	DefaultMarginPercent float64       `mapstructure:"default_margin_percent"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration from environment variables with the CARGOQUOTE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CARGOQUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cargoquote")
	v.SetDefault("db.password", "cargoquote_secret")
	v.SetDefault("db.name", "cargoquote_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Pricing defaults
	v.SetDefault("pricing.default_margin_percent", 15.0)
	v.SetDefault("pricing.cache_ttl", "5m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "CARGOQUOTE_SERVER_PORT",
		"server.read_timeout":            "CARGOQUOTE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "CARGOQUOTE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "CARGOQUOTE_SERVER_ENVIRONMENT",
		"db.host":                        "CARGOQUOTE_DB_HOST",
		"db.port":                        "CARGOQUOTE_DB_PORT",
		"db.user":                        "CARGOQUOTE_DB_USER",
		"db.password":                    "CARGOQUOTE_DB_PASSWORD",
		"db.name":                        "CARGOQUOTE_DB_NAME",
		"db.sslmode":                     "CARGOQUOTE_DB_SSLMODE",
		"db.max_open":                    "CARGOQUOTE_DB_MAX_OPEN",
		"db.max_idle":                    "CARGOQUOTE_DB_MAX_IDLE",
		"log.level":                      "CARGOQUOTE_LOG_LEVEL",
		"log.format":                     "CARGOQUOTE_LOG_FORMAT",
		"cors.allowed_origins":           "CARGOQUOTE_CORS_ALLOWED_ORIGINS",
		"pricing.default_margin_percent": "CARGOQUOTE_PRICING_DEFAULT_MARGIN_PERCENT",
		"pricing.cache_ttl":              "CARGOQUOTE_PRICING_CACHE_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CARGOQUOTE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARGOQUOTE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Pricing = PricingConfig{
		DefaultMarginPercent: v.GetFloat64("pricing.default_margin_percent"),
		CacheTTL:             v.GetDuration("pricing.cache_ttl"),
	}

	return cfg, nil
}
