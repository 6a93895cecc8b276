package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error, off
}

type WeatherConfig struct {
	WindSpeed  float64 `yaml:"wind_speed"` // knots
	Visibility float64 `yaml:"visibility"` // meters
}

type SimulationConfig struct {
	TickRate       float64       `yaml:"tick_rate"`
	AirspaceWidth  float64       `yaml:"airspace_width"`
	AirspaceHeight float64       `yaml:"airspace_height"`
	MaxAircraft    int           `yaml:"max_aircraft"`
	SpawnInterval  time.Duration `yaml:"spawn_interval"`
	InitialSpawn   bool          `yaml:"initial_spawn"`

	PriorityChance  float64 `yaml:"priority_chance"`
	EmergencyChance float64 `yaml:"emergency_chance"`

	// Seconds a landed aircraft keeps its runway occupied.
	RolloutSeconds float64 `yaml:"rollout_seconds"`

	Weather WeatherConfig `yaml:"weather"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Simulation: SimulationConfig{
			TickRate:        60.0,
			AirspaceWidth:   1024,
			AirspaceHeight:  768,
			MaxAircraft:     5,
			SpawnInterval:   20 * time.Second,
			InitialSpawn:    true,
			PriorityChance:  0.2,
			EmergencyChance: 0.05,
			RolloutSeconds:  30,
			Weather: WeatherConfig{
				WindSpeed:  15,
				Visibility: 5000,
			},
		},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ATC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	envFloat("ATC_WIND_SPEED", &c.Simulation.Weather.WindSpeed)
	envFloat("ATC_VISIBILITY", &c.Simulation.Weather.Visibility)
	envFloat("ATC_TICK_RATE", &c.Simulation.TickRate)
	if v := os.Getenv("ATC_MAX_AIRCRAFT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("ignoring ATC_MAX_AIRCRAFT=%q: not an integer", v)
			return
		}
		c.Simulation.MaxAircraft = n
	}
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warnf("ignoring %s=%q: not a number", key, v)
		return
	}
	*dst = f
}

func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}

	s := c.Simulation
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %v", s.TickRate)
	}
	if s.MaxAircraft < 0 {
		return fmt.Errorf("max_aircraft must not be negative, got %d", s.MaxAircraft)
	}
	if s.MaxAircraft > 0 && s.SpawnInterval <= 0 {
		return fmt.Errorf("spawn_interval must be positive when max_aircraft > 0, got %v", s.SpawnInterval)
	}
	if s.PriorityChance < 0 || s.PriorityChance > 1 {
		return fmt.Errorf("priority_chance must be within [0,1], got %v", s.PriorityChance)
	}
	if s.EmergencyChance < 0 || s.EmergencyChance > 1 {
		return fmt.Errorf("emergency_chance must be within [0,1], got %v", s.EmergencyChance)
	}
	return nil
}

func ParseLogLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", s)
}

// ApplyLogging sets the level of the package logger and of any extra loggers.
func (c *Config) ApplyLogging(loggers ...*log.Logger) {
	lvl, err := ParseLogLevel(c.Logging.Level)
	if err != nil {
		lvl = log.INFO
	}
	log.SetLevel(lvl)
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
}
