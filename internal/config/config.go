package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Routing   RoutingConfig   `yaml:"routing" mapstructure:"routing"`
	Simulator SimulatorConfig `yaml:"simulator" mapstructure:"simulator"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the static reference fixtures loaded at start.
type DataConfig struct {
	FacilitiesPath string `yaml:"facilities_path" mapstructure:"facilities_path"`
	TrafficPath    string `yaml:"traffic_path" mapstructure:"traffic_path"`
}

// RoutingConfig holds travel-speed assumptions. The route planner and
// the allocator's arrival estimate use independent constants.
type RoutingConfig struct {
	AverageSpeedKMH float64 `yaml:"average_speed_kmh" mapstructure:"average_speed_kmh"`
	ArrivalSpeedKMH float64 `yaml:"arrival_speed_kmh" mapstructure:"arrival_speed_kmh"`
}

// SimulatorConfig configures the live facility status simulator.
type SimulatorConfig struct {
	RefreshSecs int   `yaml:"refresh_secs" mapstructure:"refresh_secs"`
	Seed        int64 `yaml:"seed" mapstructure:"seed"`
}

// ServerConfig configures the dispatch API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks configuration consistency for the given run mode.
// Modes: "core" (allocate/route/vitals commands), "serve", "simulate".
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Routing.AverageSpeedKMH <= 0 {
		problems = append(problems, "routing.average_speed_kmh must be > 0")
	}
	if c.Routing.ArrivalSpeedKMH <= 0 {
		problems = append(problems, "routing.arrival_speed_kmh must be > 0")
	}
	if c.Data.FacilitiesPath == "" {
		problems = append(problems, "data.facilities_path is required")
	}
	if c.Data.TrafficPath == "" {
		problems = append(problems, "data.traffic_path is required")
	}

	switch mode {
	case "core":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Server.RateLimitRPS <= 0 {
			problems = append(problems, "server.rate_limit_rps must be > 0")
		}
		if c.Simulator.RefreshSecs <= 0 {
			problems = append(problems, "simulator.refresh_secs must be > 0")
		}
	case "simulate":
		if c.Simulator.RefreshSecs <= 0 {
			problems = append(problems, "simulator.refresh_secs must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.facilities_path", "data/facilities.yaml")
	v.SetDefault("data.traffic_path", "data/traffic.yaml")
	v.SetDefault("routing.average_speed_kmh", 30.0)
	v.SetDefault("routing.arrival_speed_kmh", 35.0)
	v.SetDefault("simulator.refresh_secs", 15)
	v.SetDefault("simulator.seed", 0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20.0)
	v.SetDefault("server.rate_limit_burst", 40)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
