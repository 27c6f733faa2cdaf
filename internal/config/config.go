// Package config provides configuration for the asyncaws CLI.
// Configuration can be loaded from a YAML file and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete CLI configuration.
type Config struct {
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Region      string            `mapstructure:"region"`
	SQS         EndpointConfig    `mapstructure:"sqs"`
	SNS         EndpointConfig    `mapstructure:"sns"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// CredentialsConfig holds the access key pair. Typically supplied through the
// ASYNCAWS_CREDENTIALS_ACCESS_KEY and ASYNCAWS_CREDENTIALS_SECRET_KEY
// environment variables rather than a file on disk.
type CredentialsConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EndpointConfig optionally overrides a service's regional base endpoint.
type EndpointConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig selects the signing-key cache backend.
type CacheConfig struct {
	// Backend is "none", "memory" or "redis".
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings for the distributed key cache.
type RedisConfig struct {
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Addr returns the Redis address in host:port format.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// MetricsConfig holds Prometheus exposition settings for long-running
// commands.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	return nil
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values and are prefixed
// with ASYNCAWS_, using _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ASYNCAWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.asyncaws")
	}

	// Config file is optional; environment variables can carry everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Every key needs a default, even an empty one: viper only surfaces
	// environment variables through Unmarshal for keys it already knows.
	v.SetDefault("credentials.access_key", "")
	v.SetDefault("credentials.secret_key", "")

	v.SetDefault("region", "us-east-1")

	v.SetDefault("sqs.endpoint", "")
	v.SetDefault("sns.endpoint", "")

	v.SetDefault("http.timeout", 30*time.Second)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.dial_timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "localhost:9091")
}
