package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Backend connection
	APIBaseURL         string `mapstructure:"API_BASE_URL"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// Environment
	Env string `mapstructure:"APP_ENV"` // development | production

	// UI
	AvisoTTLSegundos int `mapstructure:"AVISO_TTL_SEGUNDOS"`

	// Circuit breaker guarding the backend connection
	CBFailureThreshold int `mapstructure:"CB_FAILURE_THRESHOLD"`
	CBSuccessThreshold int `mapstructure:"CB_SUCCESS_THRESHOLD"`
	CBOpenTimeoutSecs  int `mapstructure:"CB_OPEN_TIMEOUT_SECONDS"`

	// Stub backend (cmd/capflow-stub)
	StubPort int `mapstructure:"STUB_PORT"`
}

// HTTPTimeout returns the facade timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// AvisoTTL returns how long a transient notice stays visible.
func (c *Config) AvisoTTL() time.Duration {
	return time.Duration(c.AvisoTTLSegundos) * time.Second
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("AVISO_TTL_SEGUNDOS", 4)
	viper.SetDefault("CB_FAILURE_THRESHOLD", 5)
	viper.SetDefault("CB_SUCCESS_THRESHOLD", 2)
	viper.SetDefault("CB_OPEN_TIMEOUT_SECONDS", 30)
	viper.SetDefault("STUB_PORT", 8000)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
