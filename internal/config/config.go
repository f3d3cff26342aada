// Package config provides unified configuration loading for the chatbot engine.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the chatbot engine.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Cache         CacheConfig         `yaml:"cache"`
	Generator     GeneratorConfig     `yaml:"generator"`
	Chatbot       ChatbotConfig       `yaml:"chatbot"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"` // sqlite or postgres
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path         string `yaml:"path"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	JournalMode  string `yaml:"journal_mode"`
}

// PostgresConfig holds Postgres-specific settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// CacheConfig holds answer-cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`    // 0 disables answer caching
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// GeneratorConfig holds settings for the external text-generation service
// used as the last fallback stage.
type GeneratorConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ChatbotConfig holds response-cascade tuning.
type ChatbotConfig struct {
	SiteBaseURL    string  `yaml:"site_base_url"`
	MatchThreshold float64 `yaml:"match_threshold"`
	LyricThreshold float64 `yaml:"lyric_threshold"`
	SongLimit      int     `yaml:"song_limit"`
	GenreSongCap   int     `yaml:"genre_song_cap"`
	GenrePerArtist int     `yaml:"genre_per_artist"`
	LyricTopN      int     `yaml:"lyric_top_n"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8090,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path:         "/tmp/chatbot-engine.db",
				MaxOpenConns: 1,
				JournalMode:  "WAL",
			},
			Postgres: PostgresConfig{
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				ConnMaxLifetime: 5 * time.Minute,
			},
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        0,
			MaxEntries: 10000,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Generator: GeneratorConfig{
			Model:   "gemini-2.0-flash",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Timeout: 15 * time.Second,
		},
		Chatbot: ChatbotConfig{
			SiteBaseURL:    "http://localhost:3000",
			MatchThreshold: 0.6,
			LyricThreshold: 0.7,
			SongLimit:      5,
			GenreSongCap:   10,
			GenrePerArtist: 3,
			LyricTopN:      5,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}

	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Chatbot.MatchThreshold < 0 || c.Chatbot.MatchThreshold > 1 {
		return fmt.Errorf("match_threshold must be between 0 and 1")
	}

	if c.Chatbot.LyricThreshold < 0 || c.Chatbot.LyricThreshold > 1 {
		return fmt.Errorf("lyric_threshold must be between 0 and 1")
	}

	if c.Chatbot.SongLimit < 1 {
		return fmt.Errorf("song_limit must be at least 1")
	}

	return nil
}

// GeneratorEnabled reports whether the external generator fallback is usable.
func (c *Config) GeneratorEnabled() bool {
	return c.Generator.APIKey != ""
}

// DatabaseDSN returns the appropriate database connection string.
func (c *Config) DatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLite.Path
	}
	return c.Database.Postgres.DSN
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.SQLite.Path = strings.TrimPrefix(v, "sqlite:")
		} else if strings.HasPrefix(v, "postgres") {
			cfg.Database.Driver = "postgres"
			cfg.Database.Postgres.DSN = v
		}
	}

	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Database.Postgres.DSN = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Generator.APIKey = v
	}

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Generator.Model = v
	}

	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}

	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Chatbot.SiteBaseURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
