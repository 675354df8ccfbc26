package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sobirin-dev/hendshake/internal/config"
	"github.com/sobirin-dev/hendshake/internal/entrystore"
	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
	"github.com/sobirin-dev/hendshake/internal/logger"
	"github.com/sobirin-dev/hendshake/internal/redis"
	"github.com/sobirin-dev/hendshake/internal/store/memory"
	redisstore "github.com/sobirin-dev/hendshake/internal/store/redis"
	"github.com/sobirin-dev/hendshake/internal/store/sqlite"
	"github.com/sobirin-dev/hendshake/internal/utils"
)

// Backend is an opened snapshot location. Slot and Pinger are nil for the
// "none" backend.
type Backend struct {
	Name   string
	Slot   entrystore.Slot
	Pinger deps.Pinger

	closer io.Closer
}

// Close releases the connection behind the slot, if any.
func (b *Backend) Close(log logger.Logger) {
	if b.closer != nil {
		utils.MustClose(b.closer, log, b.Name)
	}
}

// OpenBackend connects the snapshot backend selected by cfg.Backend.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return &Backend{Name: cfg.Backend}, nil

	case config.BackendMemory:
		slot := memory.NewSlot()
		return &Backend{Name: cfg.Backend, Slot: slot, Pinger: slot}, nil

	case config.BackendRedis:
		client, err := redis.New(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		slot := redisstore.NewSlot(client, cfg.Namespace)
		log.Info("snapshot backend ready",
			logger.String("backend", cfg.Backend),
			logger.String("key", slot.Key()))
		return &Backend{Name: cfg.Backend, Slot: slot, Pinger: slot, closer: client}, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		slot, err := sqlite.Open(cfg.SQLitePath, cfg.Namespace)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Info("snapshot backend ready",
			logger.String("backend", cfg.Backend),
			logger.String("path", cfg.SQLitePath))
		return &Backend{Name: cfg.Backend, Slot: slot, Pinger: slot, closer: slot}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// OpenStore opens the backend and restores the store from it.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*entrystore.Store, *Backend, error) {
	backend, err := OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	store := entrystore.New(entrystore.Options{
		Slot:   backend.Slot,
		Logger: log.With(logger.String("component", "entrystore")),
	})

	// a failed read is logged by Restore and leaves the store empty
	_ = store.Restore(ctx)
	return store, backend, nil
}
