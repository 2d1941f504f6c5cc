// Package client assembles the local-first core from configuration: the
// storage backend, the repository on top of it, and, when a sync endpoint
// is configured, the engine that pushes and pulls the store document.
package client

import (
	"fmt"
	"time"

	"foodcycle/internal/config"
	"foodcycle/internal/kv"
	"foodcycle/internal/repo"
	"foodcycle/internal/syncer"
)

// Core bundles the assembled repository and its optional sync engine.
// Sync is nil when no syncBaseURL is configured; the repository then
// runs purely local.
type Core struct {
	Repo *repo.Repository
	Sync *syncer.Engine
}

// New builds a Core from client configuration.
func New(cfg config.ClientConfig) (*Core, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	var engine *syncer.Engine
	opts := []repo.Option{}
	if cfg.SyncBaseURL != "" {
		var engineOpts []syncer.Option
		if cfg.DebounceMs > 0 {
			engineOpts = append(engineOpts, syncer.WithDebounce(time.Duration(cfg.DebounceMs)*time.Millisecond))
		}
		engine = syncer.New(cfg.SyncBaseURL, store, engineOpts...)
		opts = append(opts, repo.WithScheduler(engine))
	}

	return &Core{Repo: repo.New(store, opts...), Sync: engine}, nil
}

func newStore(cfg config.ClientConfig) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemoryStore(), nil
	case config.StorageFile:
		store, err := kv.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil
	case config.StorageRedis:
		return kv.NewRedisStore(cfg.RedisAddr, ""), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
