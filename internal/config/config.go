package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	JWTSecret   string `yaml:"jwt_secret"`
	OpenAIKey   string `yaml:"openai_key"`
	CORSOrigins string `yaml:"cors_origins"`

	Database struct {
		Dialect string `yaml:"dialect"` // sqlite3 | postgres
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{
		Port:        8080,
		MetricsPort: 9090,
		JWTSecret:   "chakula-dev-secret",
		CORSOrigins: "http://localhost:3000",
	}
	cfg.Database.Dialect = "sqlite3"
	cfg.Database.DSN = "chakula.db"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	return cfg
}

// Load reads the yaml config file at path, falling back to defaults if
// it does not exist, then applies environment overrides. A local .env
// file is honored for development.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("CHAKULA_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIKey = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.Dialect = "postgres"
		cfg.Database.DSN = v
	}
	if v := os.Getenv("CHAKULA_DB_PATH"); v != "" {
		cfg.Database.Dialect = "sqlite3"
		cfg.Database.DSN = v
	}
}
