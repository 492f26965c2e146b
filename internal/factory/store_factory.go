package factory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/isyiwang/spam-blaster/internal/adapters/store"
	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates verdict repositories based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateVerdictRepository creates a verdict repository based on the configuration.
// A disabled journal gets an idle memory store so no backend is opened.
func (f *StoreFactory) CreateVerdictRepository() (core.VerdictRepository, error) {
	storeConfig := f.cfg.GetStore()
	if !storeConfig.Enabled {
		f.logger.Info("Verdict journal disabled")
		return store.NewMemoryStore(f.logger, 0), nil
	}

	cleanupFreq, err := f.cfg.GetDuration("store.cleanup_frequency")
	if err != nil {
		return nil, fmt.Errorf("invalid store cleanup frequency: %w", err)
	}

	switch storeConfig.Type {
	case "memory":
		return store.NewMemoryStore(f.logger, cleanupFreq), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeConfig.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeConfig.SQLitePath, f.logger, cleanupFreq)
	case "mysql":
		return store.NewMySQLStore(storeConfig.MySQLDSN, f.logger, cleanupFreq)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeConfig.Type)
	}
}

// GetRetention returns how long verdict records are kept
func (f *StoreFactory) GetRetention() (time.Duration, error) {
	return f.cfg.GetDuration("store.retention")
}

// IsStoreEnabled returns whether verdicts are journaled
func (f *StoreFactory) IsStoreEnabled() bool {
	return f.cfg.GetStore().Enabled
}
