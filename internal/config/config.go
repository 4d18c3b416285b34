package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SYSTEM_STATS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Endpoint        string        `mapstructure:"endpoint"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	Header string `mapstructure:"header"`
	APIKey string `mapstructure:"api_key"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
	File string `mapstructure:"file"`
}

type StatsConfig struct {
	DiskPath     string        `mapstructure:"disk_path"`
	SampleWindow time.Duration `mapstructure:"sample_window"`
	Parallel     bool          `mapstructure:"parallel"`
	// HealthInterval is how often the metric source is probed for /health.
	HealthInterval time.Duration `mapstructure:"health_interval"`
}

type TelemetryConfig struct {
	Enabled       bool                `mapstructure:"enabled"`
	Prometheus    bool                `mapstructure:"prometheus"`
	ServiceName   string              `mapstructure:"service_name"`
	OTELCollector OTELCollectorConfig `mapstructure:"otel_collector"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

type OTELCollectorConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type MetricsConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "9090")
	v.SetDefault("server.endpoint", "")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("auth.header", "x-api-key")
	v.SetDefault("auth.api_key", "")

	v.SetDefault("log.mode", "pretty")
	v.SetDefault("log.file", "")

	v.SetDefault("stats.disk_path", "/")
	v.SetDefault("stats.sample_window", time.Second)
	v.SetDefault("stats.parallel", true)
	v.SetDefault("stats.health_interval", 30*time.Second)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.prometheus", true)
	v.SetDefault("telemetry.service_name", "system-stats")
	v.SetDefault("telemetry.otel_collector.host", "localhost")
	v.SetDefault("telemetry.otel_collector.port", 4317)
	v.SetDefault("telemetry.metrics.interval", 15*time.Second)
}

// LoadConfig reads the optional config file at path, applies SYSTEM_STATS_*
// environment overrides on top of the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.APIKey == "" {
		errs = append(errs, errors.New("auth.api_key is required"))
	}
	if c.Auth.Header == "" {
		errs = append(errs, errors.New("auth.header must not be empty"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Stats.SampleWindow <= 0 {
		errs = append(errs, errors.New("stats.sample_window must be positive"))
	}
	if c.Stats.DiskPath == "" {
		errs = append(errs, errors.New("stats.disk_path is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}
