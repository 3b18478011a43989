package config

import (
	"time"

	"reviewminer/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName     = "reviewminer"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8090
	defaultConcurrency     = 10
	defaultMaxBatchSize    = 500
	defaultShutdownTimeout = 15 * time.Second
	defaultDBPath          = "data/reviewminer.db"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultRateRPS         = 20
	defaultRateBurst       = 40
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds all configuration for the review miner service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Logging  logger.Config  `yaml:"logging"`
	API      APIConfig      `yaml:"api"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"REVIEWMINER_PORT"        yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"               yaml:"debug"`
	Concurrency     int           `env:"REVIEWMINER_CONCURRENCY" yaml:"concurrency"`
	MaxBatchSize    int           `yaml:"max_batch_size"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds SQLite database configuration.
type DatabaseConfig struct {
	Path            string        `env:"REVIEWMINER_DB_PATH" yaml:"path"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	RateLimitRPS   int `yaml:"rate_limit_rps"`
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return LoadWithDefaults[Config](path, SetDefaults)
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setLoggingDefaults(&cfg.Logging)
	setAPIDefaults(&cfg.API)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.MaxBatchSize == 0 {
		s.MaxBatchSize = defaultMaxBatchSize
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Path == "" {
		d.Path = defaultDBPath
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setLoggingDefaults(l *logger.Config) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setAPIDefaults(a *APIConfig) {
	if a.RateLimitRPS == 0 {
		a.RateLimitRPS = defaultRateRPS
	}
	if a.RateLimitBurst == 0 {
		a.RateLimitBurst = defaultRateBurst
	}
}
