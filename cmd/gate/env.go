package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boarding-gate/internal/api"
	"github.com/vovakirdan/boarding-gate/internal/config"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

// loadConfig reads the config file, then .env and GATE_* variables, then flags.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagStorage != "" {
		cfg.Storage.Backend = config.StorageBackend(flagStorage)
	}
	return cfg, cfg.Validate()
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, nil
}

// openLogFile opens ~/.gate/gate.log for appending. The TUI owns the
// terminal while playing, so logs go to a file.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandHome(filepath.Join("~", ".gate", "gate.log"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// backend bundles the storage and remote service selected by the config.
type backend struct {
	kv       storage.KV
	store    *storage.Store // nil for the memory backend or when SQLite is unavailable
	service  api.Service
	notifier *api.Notifier
}

// openBackend opens the settings KV, the round history and the remote
// service. SQLite failures degrade to in-memory settings and the log-only
// service, as the game must still start.
func openBackend(cfg config.Config, logger *log.Logger) (*backend, error) {
	b := &backend{}

	if cfg.Storage.Backend != config.BackendMemory {
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open database, rounds will not be recorded", "path", cfg.Storage.DBPath, "err", err)
		} else {
			b.store = store
		}
	}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if b.store != nil {
			b.kv = b.store
		}
	case config.BackendGData:
		kv, err := storage.OpenGData(cfg.Storage.AppName)
		if err != nil {
			b.close()
			return nil, err
		}
		b.kv = kv
	}
	if b.kv == nil {
		b.kv = storage.NewMemoryKV()
	}

	if b.store != nil {
		b.service = api.NewLocal(b.store)
	} else {
		b.service = api.NewStub(logger)
	}
	b.notifier = api.NewNotifier(b.service, api.NotifierOptions{}, logger)

	logger.Debug("backend ready", "storage", cfg.Storage.Backend, "history", b.store != nil)
	return b, nil
}

// close flushes pending remote calls and closes the database.
func (b *backend) close() {
	if b.notifier != nil {
		b.notifier.Close()
	}
	if b.store != nil {
		b.store.Close()
	}
}
