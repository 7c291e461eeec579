package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Bloom      BloomConfig      `mapstructure:"bloom"`
	RocketMQ   RocketMQConfig   `mapstructure:"rocketmq"`
	Geo        GeoConfig        `mapstructure:"geo"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Release reports whether the server runs in release (production) mode.
func (s ServerConfig) Release() bool {
	return s.Mode == "release"
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// MySQLConfig represents MySQL configuration
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// PostgresConfig represents Postgres configuration
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BloomConfig represents Bloom Filter configuration
type BloomConfig struct {
	Capacity  int64   `mapstructure:"capacity"`
	ErrorRate float64 `mapstructure:"error_rate"`
}

// RocketMQConfig represents RocketMQ configuration
type RocketMQConfig struct {
	NameServer string `mapstructure:"nameserver"`
	Topic      string `mapstructure:"topic"`
	Group      string `mapstructure:"group"`
}

// GeoConfig configures the IP geolocation resolver
type GeoConfig struct {
	// ProviderURL is a fmt template receiving the raw IP.
	ProviderURL  string        `mapstructure:"provider_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxPerWindow int           `mapstructure:"max_per_window"`
	Window       time.Duration `mapstructure:"window"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	EdgeHeader   string        `mapstructure:"edge_header"`
	StatusField  string        `mapstructure:"status_field"`
	StatusOK     string        `mapstructure:"status_ok"`
	CountryField string        `mapstructure:"country_field"`
	RegionField  string        `mapstructure:"region_field"`
	CityField    string        `mapstructure:"city_field"`
}

// RateLimitConfig configures request limits
type RateLimitConfig struct {
	CreateLimit  int           `mapstructure:"create_limit"`
	CreateWindow time.Duration `mapstructure:"create_window"`
	TrackLimit   int           `mapstructure:"track_limit"`
	TrackWindow  time.Duration `mapstructure:"track_window"`
	GlobalRPS    float64       `mapstructure:"global_rps"`
	GlobalBurst  int           `mapstructure:"global_burst"`
}

// ReconcilerConfig configures the counter reconciliation job
type ReconcilerConfig struct {
	// Schedule is a cron expression; empty disables the job.
	Schedule string        `mapstructure:"schedule"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// AuthConfig holds API key settings
type AuthConfig struct {
	BootstrapKeys []BootstrapKey `mapstructure:"bootstrap_keys"`
}

// BootstrapKey is an API key ensured at startup
type BootstrapKey struct {
	Name      string `mapstructure:"name"`
	Key       string `mapstructure:"key"`
	CanCreate bool   `mapstructure:"can_create"`
	CanRead   bool   `mapstructure:"can_read"`
	CanUpdate bool   `mapstructure:"can_update"`
	CanDelete bool   `mapstructure:"can_delete"`
}

// LogConfig configures logging output
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// CacheConfig configures fast-store cache lifetimes
type CacheConfig struct {
	LinkTTL   time.Duration `mapstructure:"link_ttl"`
	UniqueTTL time.Duration `mapstructure:"unique_ttl"`
}

// Global config instance
var cfg *Config

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand environment variables
	cfg.Database.Redis.Password = expandEnv(cfg.Database.Redis.Password)
	cfg.Database.MySQL.DSN = expandEnv(cfg.Database.MySQL.DSN)
	cfg.Database.Postgres.DSN = expandEnv(cfg.Database.Postgres.DSN)
	for i := range cfg.Auth.BootstrapKeys {
		cfg.Auth.BootstrapKeys[i].Key = expandEnv(cfg.Auth.BootstrapKeys[i].Key)
	}

	if cfg.Database.Driver != "mysql" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}

// Get returns the global config instance
func Get() *Config {
	return cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("bloom.capacity", 10000000)
	v.SetDefault("bloom.error_rate", 0.01)
	v.SetDefault("rocketmq.topic", "click_event")
	v.SetDefault("rocketmq.group", "redirector_consumer_group")

	v.SetDefault("geo.provider_url", "http://ip-api.com/json/%s?fields=status,country,regionName,city")
	v.SetDefault("geo.timeout", 2*time.Second)
	v.SetDefault("geo.max_per_window", 40)
	v.SetDefault("geo.window", time.Minute)
	v.SetDefault("geo.cache_ttl", time.Hour)
	v.SetDefault("geo.edge_header", "CF-IPCountry")
	v.SetDefault("geo.status_field", "status")
	v.SetDefault("geo.status_ok", "success")
	v.SetDefault("geo.country_field", "country")
	v.SetDefault("geo.region_field", "regionName")
	v.SetDefault("geo.city_field", "city")

	v.SetDefault("ratelimit.create_limit", 100)
	v.SetDefault("ratelimit.create_window", time.Minute)
	v.SetDefault("ratelimit.track_limit", 60)
	v.SetDefault("ratelimit.track_window", time.Minute)
	v.SetDefault("ratelimit.global_rps", 0)
	v.SetDefault("ratelimit.global_burst", 200)

	v.SetDefault("reconciler.schedule", "@every 10m")
	v.SetDefault("reconciler.lock_ttl", 5*time.Minute)

	v.SetDefault("log.level", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("cache.link_ttl", 5*time.Minute)
	v.SetDefault("cache.unique_ttl", 24*time.Hour)
}

// expandEnv expands environment variables in the string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		return os.Getenv(envKey)
	}
	return s
}
