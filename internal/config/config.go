package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	RedisPasswordEnvVar = "ATHLETEPRO_REDIS_PASS"
)

type Config struct {
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	Environment   string `toml:"environment"`
	// storage
	StorageBackend string `toml:"storage_backend"`
	DataDir        string `toml:"data_dir"`
	Namespace      string `toml:"namespace"`
	CacheSizeMB    int    `toml:"cache_size_mb"`
	MaxValueBytes  int    `toml:"max_value_bytes"`
	// redis
	RedisHost     string `toml:"redis_host"`
	RedisPort     string `toml:"redis_port"`
	RedisDB       int    `toml:"redis_db"`
	RedisPassword string `toml:"-"`
	// background services
	StatsRefreshInterval     time.Duration `toml:"stats_refresh_interval"`
	NotificationScanInterval time.Duration `toml:"notification_scan_interval"`
	AutoSaveInterval         time.Duration `toml:"auto_save_interval"`
	// metrics
	MetricsTextfile string `toml:"metrics_textfile"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Default is used when no config file exists: local sqlite storage in
// ./data, logs to stdout only.
func Default() *Config {
	return &Config{
		LogLevel:                 "info",
		LogToStdout:              true,
		Environment:              EnvDevelopment,
		StorageBackend:           "sqlite",
		DataDir:                  "./data",
		Namespace:                "athletePro_",
		CacheSizeMB:              4,
		MaxValueBytes:            5 * 1024 * 1024,
		RedisHost:                "localhost",
		RedisPort:                "6379",
		StatsRefreshInterval:     60 * time.Second,
		NotificationScanInterval: 300 * time.Second,
		AutoSaveInterval:         30 * time.Second,
	}
}

// Load reads the TOML file at path and returns the section for env. Fields
// not present in the file keep their Default values. A missing file is not
// an error.
func Load(env, path string) (*Config, error) {
	cfg, err := load(env, path)
	if err != nil {
		return nil, err
	}
	cfg.RedisPassword = os.Getenv(RedisPasswordEnvVar)
	return cfg, nil
}

func load(env, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if _, err := (&Toml{}).Get(env); err != nil {
			return nil, err
		}
		cfg := Default()
		cfg.Environment = normalizeEnv(env)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// sections are decoded over the defaults, so they are plain values here
	sections := struct {
		Development Config
		Production  Config
	}{
		Development: *Default(),
		Production:  *Default(),
	}
	sections.Production.Environment = EnvProduction
	if _, err := toml.Decode(string(data), &sections); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	t := &Toml{
		Development: &sections.Development,
		Production:  &sections.Production,
	}
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
	if c.StatsRefreshInterval <= 0 || c.NotificationScanInterval <= 0 || c.AutoSaveInterval <= 0 {
		return errors.New("service intervals must be positive")
	}
	if c.CacheSizeMB < 0 || c.MaxValueBytes < 0 {
		return errors.New("cache size and max value bytes cannot be negative")
	}
	return nil
}

func normalizeEnv(env string) string {
	switch strings.ToLower(env) {
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}
