package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/gate.yaml
var defaultGateYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultGateYAML))
	copy(out, defaultGateYAML)
	return out
}

// Default returns the built-in configuration.
// It matches defaults/gate.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Round: DefaultRound(),
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			DBPath:    "~/.gate/gate.db",
			AppName:   "boarding-gate",
			Namespace: "ticket-mockup",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultRound returns the standard 20 second round.
func DefaultRound() RoundConfig {
	return RoundConfig{
		CountdownSeconds:   20,
		CountdownInterval:  time.Second,
		ScoreInterval:      500 * time.Millisecond,
		ScoreMin:           5,
		ScoreMax:           15,
		PassengerCountdown: 5,
		PassengerInterval:  time.Second,
		PassengerHold:      600 * time.Millisecond,
		PassengerRestart:   6 * time.Second,
	}
}
