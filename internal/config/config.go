// Package config provides YAML-based configuration for the boarding gate:
// round timings, storage backend selection and SSH server settings.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Round   RoundConfig   `yaml:"round"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// RoundConfig defines the timing and scoring of one round.
type RoundConfig struct {
	CountdownSeconds   int           `yaml:"countdown_seconds"`   // Starting value of the round timer
	CountdownInterval  time.Duration `yaml:"countdown_interval"`  // Period of the timer tick
	ScoreInterval      time.Duration `yaml:"score_interval"`      // Period of the score tick
	ScoreMin           int           `yaml:"score_min"`           // Smallest increment per score tick
	ScoreMax           int           `yaml:"score_max"`           // Largest increment per score tick
	PassengerCountdown int           `yaml:"passenger_countdown"` // "Next passenger in N" starting value
	PassengerInterval  time.Duration `yaml:"passenger_interval"`  // Period of the passenger countdown
	PassengerHold      time.Duration `yaml:"passenger_hold"`      // How long "Passenger ready!" stays up
	PassengerRestart   time.Duration `yaml:"passenger_restart"`   // Delay from cycle start to the next cycle
}

// StorageBackend names a durable key-value implementation.
type StorageBackend string

const (
	BackendSQLite StorageBackend = "sqlite"
	BackendGData  StorageBackend = "gdata"
	BackendMemory StorageBackend = "memory"
)

// StorageConfig selects where settings and round history live.
type StorageConfig struct {
	Backend   StorageBackend `yaml:"backend"`
	DBPath    string         `yaml:"db_path"`   // SQLite file, also used for round history
	AppName   string         `yaml:"app_name"`  // gdata application directory name
	Namespace string         `yaml:"namespace"` // Key prefix for persisted settings
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Validate checks that the configuration can drive a round.
func (c Config) Validate() error {
	r := c.Round
	switch {
	case r.CountdownSeconds <= 0:
		return fmt.Errorf("%w: countdown_seconds must be positive", ErrInvalidConfig)
	case r.CountdownInterval <= 0, r.ScoreInterval <= 0, r.PassengerInterval <= 0:
		return fmt.Errorf("%w: tick intervals must be positive", ErrInvalidConfig)
	case r.ScoreMin < 0 || r.ScoreMin > r.ScoreMax:
		return fmt.Errorf("%w: score range [%d, %d]", ErrInvalidConfig, r.ScoreMin, r.ScoreMax)
	case r.PassengerCountdown <= 0:
		return fmt.Errorf("%w: passenger_countdown must be positive", ErrInvalidConfig)
	case r.PassengerHold < 0 || r.PassengerRestart <= 0:
		return fmt.Errorf("%w: passenger hold/restart", ErrInvalidConfig)
	}

	switch c.Storage.Backend {
	case BackendSQLite, BackendGData, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendGData && c.Storage.AppName == "" {
		return fmt.Errorf("%w: gdata backend needs app_name", ErrInvalidConfig)
	}
	return nil
}
