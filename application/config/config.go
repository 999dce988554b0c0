// Package config loads SDK settings from defaults, an optional config file
// and POKESDK_* environment variables.
package config

import (
	stdErrors "errors"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable the SDK reads.
const EnvPrefix = "POKESDK"

// EnvConfigFile names the environment variable holding a config file path.
const EnvConfigFile = EnvPrefix + "_CONFIG"

// Defaults.
const (
	DefaultBaseURL      = "https://pokeapi.co/api/v2"
	DefaultTimeout      = 30 * time.Second
	DefaultRetryBackoff = 250 * time.Millisecond
	DefaultMaxBodyBytes = 10 * 1024 * 1024
	DefaultUserAgent    = "poke-sdk-go/1.0"
	DefaultLogLevel     = "info"
)

var validate = validator.New()

// Config holds the settings of one SDK instance.
type Config struct {
	// BaseURL is the root of the upstream API; lookups go to {BaseURL}/pokemon/{id}.
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	UserAgent string `mapstructure:"user_agent" validate:"required"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff time.Duration `mapstructure:"retry_backoff" validate:"gte=0"`

	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gt=0"`

	// RateLimit is the maximum requests per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`

	// Retries is the number of extra attempts after a transport failure.
	Retries int `mapstructure:"retries" validate:"gte=0,lte=10"`
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		UserAgent:    DefaultUserAgent,
		LogLevel:     DefaultLogLevel,
		Timeout:      DefaultTimeout,
		RetryBackoff: DefaultRetryBackoff,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Load builds a Config from defaults, the file at path (if non-empty) and the
// environment, in increasing order of precedence, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retry_backoff", d.RetryBackoff)
	v.SetDefault("max_body_bytes", d.MaxBodyBytes)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("retries", d.Retries)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &sdkerrors.ConfigError{Err: err}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &sdkerrors.ConfigError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv is Load with the path taken from POKESDK_CONFIG.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(EnvConfigFile))
}

// Validate checks every field, reporting the first invalid one.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		return &sdkerrors.ConfigError{Field: verrs[0].Field(), Err: verrs[0]}
	}
	return &sdkerrors.ConfigError{Err: err}
}
