package config

import (
	"fmt"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/spf13/viper"
)

// Config is the whole engine configuration, loaded from one YAML file.
type Config struct {
	Server     ServerConfig       `mapstructure:"server"`
	Sources    SourcesConfig      `mapstructure:"sources"`
	Session    SessionConfig      `mapstructure:"session"`
	Thresholds metrics.Thresholds `mapstructure:"thresholds"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type SourcesConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// Endpoints maps a source ID to the base URL of the store serving it.
	Endpoints map[string]string `mapstructure:"endpoints"`
}

type SessionConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

func (c SourcesConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SessionConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("sources.timeout_seconds", 10)
	v.SetDefault("session.cache_ttl_seconds", 300)
	v.SetDefault("thresholds.emergency_fund_adequate_months", 6)
	v.SetDefault("thresholds.debt_service_high_pct", 40)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for id := range c.Sources.Endpoints {
		if !knownSource(domain.SourceID(id)) {
			return fmt.Errorf("unknown source %q in sources.endpoints", id)
		}
	}
	for _, id := range domain.ConfiguredSources() {
		if c.Sources.Endpoints[string(id)] == "" {
			return fmt.Errorf("missing endpoint for source %q", id)
		}
	}
	return nil
}

func knownSource(id domain.SourceID) bool {
	for _, known := range domain.ConfiguredSources() {
		if id == known {
			return true
		}
	}
	return false
}
