package main

import (
	"context"
	"fmt"

	"github.com/iwanyu/shelf/internal/config"
	"github.com/iwanyu/shelf/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and brings its schema current.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/iwanyu/shelf.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
