package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google  GoogleConfig  `yaml:"google" mapstructure:"google"`
	Circuit CircuitConfig `yaml:"circuit" mapstructure:"circuit"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Places and Geocoding web service settings.
type GoogleConfig struct {
	APIKey              string          `yaml:"api_key" mapstructure:"api_key"`
	PlacesBaseURL       string          `yaml:"places_base_url" mapstructure:"places_base_url"`
	GeocodeBaseURL      string          `yaml:"geocode_base_url" mapstructure:"geocode_base_url"`
	TimeoutSecs         int             `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS        float64         `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	Language            string          `yaml:"language" mapstructure:"language"`
	PageRetry           PageRetryConfig `yaml:"page_retry" mapstructure:"page_retry"`
	FanOutConcurrency   int             `yaml:"fanout_concurrency" mapstructure:"fanout_concurrency"`
	ReverseH3Resolution int             `yaml:"reverse_h3_resolution" mapstructure:"reverse_h3_resolution"`
}

// Timeout is the per-request HTTP timeout.
func (g GoogleConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// PageRetryConfig tunes the page-token retry loop.
type PageRetryConfig struct {
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	DelayMs     int `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// Delay is the fixed wait between page-token attempts.
func (p PageRetryConfig) Delay() time.Duration {
	return time.Duration(p.DelayMs) * time.Millisecond
}

// CircuitConfig configures the per-host circuit breaker.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// CacheConfig configures the SQLite response cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// TTL is how long cached responses stay fresh.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLACES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.places_base_url", "https://maps.googleapis.com/maps/api/place/")
	v.SetDefault("google.geocode_base_url", "https://maps.googleapis.com/maps/api/geocode/")
	v.SetDefault("google.timeout_secs", 10)
	v.SetDefault("google.rate_limit_rps", 0)
	v.SetDefault("google.language", "")
	v.SetDefault("google.page_retry.max_attempts", 5)
	v.SetDefault("google.page_retry.delay_ms", 300)
	v.SetDefault("google.fanout_concurrency", 0)
	v.SetDefault("google.reverse_h3_resolution", 0)
	v.SetDefault("circuit.failure_threshold", 5)
	v.SetDefault("circuit.reset_timeout_secs", 30)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "places-cache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks the settings a command needs. Mode is "offline" for
// commands that never call the web services, "query" for those that do and
// "serve" for the HTTP server.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "offline":
	case "query", "serve":
		if c.Google.APIKey == "" {
			problems = append(problems, "google.api_key is required")
		}
		if c.Google.PlacesBaseURL == "" {
			problems = append(problems, "google.places_base_url is required")
		}
		if c.Google.GeocodeBaseURL == "" {
			problems = append(problems, "google.geocode_base_url is required")
		}
		if c.Google.TimeoutSecs <= 0 {
			problems = append(problems, "google.timeout_secs must be > 0")
		}
		if c.Google.RateLimitRPS < 0 {
			problems = append(problems, "google.rate_limit_rps must be >= 0")
		}
		if c.Google.PageRetry.MaxAttempts < 1 {
			problems = append(problems, "google.page_retry.max_attempts must be >= 1")
		}
		if c.Google.PageRetry.DelayMs < 0 {
			problems = append(problems, "google.page_retry.delay_ms must be >= 0")
		}
		if c.Google.ReverseH3Resolution < 0 || c.Google.ReverseH3Resolution > 15 {
			problems = append(problems, "google.reverse_h3_resolution must be between 0 and 15")
		}
		if c.Cache.Enabled && c.Cache.Path == "" {
			problems = append(problems, "cache.path is required when cache.enabled")
		}
		if mode == "serve" && c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
