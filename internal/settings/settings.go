// Package settings persists small user preferences, such as the selected
// collection sort order, across runs.
package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fakenft/internal/config"
	"fakenft/internal/security/secretbox"
)

const (
	SortTypeKey = "selectedSortType"
	APITokenKey = "apiToken"
)

// Store is a durable string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Open builds the store selected by cfg.SettingsBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.SettingsBackend {
	case "", "file":
		var box *secretbox.Box
		if cfg.SettingsEncryptionKey != "" {
			b, err := secretbox.New(cfg.SettingsEncryptionKey)
			if err != nil {
				return nil, err
			}
			box = b
		}
		return NewFile(cfg.SettingsPath, box, APITokenKey), nil
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(ctx, SQLitePath(cfg.SettingsPath))
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
	}
}

type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SQLitePath keeps the sqlite database apart from the JSON document the file
// backend writes: a ".json" path becomes ".db" alongside it.
func SQLitePath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
	}
	return path
}
