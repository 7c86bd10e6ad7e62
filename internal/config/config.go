package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"gallery_backend/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, sqlite, mysql
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Seed struct {
		Enabled         bool   `yaml:"enabled"`
		DefaultPassword string `yaml:"default_password"`
	} `yaml:"seed"`

	Monitoring MonitoringConfig `yaml:"monitoring"`

	Email EmailConfig `yaml:"email"`
}

type MonitoringConfig struct {
	BaseDelay time.Duration `yaml:"base_delay"`
	Jitter    time.Duration `yaml:"jitter"`
	QueueSize int           `yaml:"queue_size"`
	Notifier  string        `yaml:"notifier"` // memory, redis
	RedisAddr string        `yaml:"redis_addr"`
	Channel   string        `yaml:"channel"`
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
}

var AppConfig *Config

// Default returns the settings used for local runs and tests.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "gallery.db"
	cfg.Database.MaxOpenConns = 1

	cfg.JWT.Secret = "change-me"
	cfg.JWT.TTL = 24 * 60

	cfg.Seed.Enabled = true
	cfg.Seed.DefaultPassword = "password123"

	cfg.Monitoring.BaseDelay = 2 * time.Second
	cfg.Monitoring.Jitter = 1500 * time.Millisecond
	cfg.Monitoring.QueueSize = 64
	cfg.Monitoring.Notifier = "memory"
	cfg.Monitoring.Channel = "gallery:scans"

	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@galleryoflight.app"
	cfg.Email.FromName = "The Gallery of Light"
	return &cfg
}

// Load reads configuration. When DATABASE_URL is set the environment wins
// (container and test mode); otherwise the YAML file at path is decoded
// over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		logger.Info("Loading configuration from environment variables")
		applyEnv(cfg, dbURL)
		return cfg, cfg.Validate()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Config file not found, using defaults", "path", path)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	logger.Info("Loaded configuration file", "path", path)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, dbURL string) {
	cfg.Database.DSN = dbURL
	cfg.Database.Driver = getEnv("DATABASE_DRIVER", "postgres")
	cfg.Server.Env = getEnv("SERVER_ENV", cfg.Server.Env)
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.TTL = getEnvAsInt("JWT_TTL", cfg.JWT.TTL)
	cfg.Seed.Enabled = getEnv("SEED_ENABLED", "true") == "true"
	cfg.Monitoring.Notifier = getEnv("MONITORING_NOTIFIER", cfg.Monitoring.Notifier)
	cfg.Monitoring.RedisAddr = getEnv("REDIS_ADDR", cfg.Monitoring.RedisAddr)
}

// Validate rejects combinations the app cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "postgresql", "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	switch c.Monitoring.Notifier {
	case "memory":
	case "redis":
		if c.Monitoring.RedisAddr == "" {
			return fmt.Errorf("monitoring.redis_addr is required for the redis notifier")
		}
	default:
		return fmt.Errorf("unsupported monitoring notifier: %q", c.Monitoring.Notifier)
	}
	return nil
}

// TokenTTL is the session lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
