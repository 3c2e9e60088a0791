package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jask/savepass/internal/config"
	"github.com/jask/savepass/internal/database"
	"github.com/jask/savepass/internal/database/repository"
	"github.com/jask/savepass/internal/prefs"
	"github.com/jask/savepass/internal/secrets"
	"github.com/jask/savepass/internal/service"
)

// openStore builds the key/value store selected by cfg. The returned func
// releases whatever the backend holds open.
func openStore(cfg config.Config) (service.Store, func(), error) {
	var (
		store   service.Store
		closeFn = func() {}
	)
	switch cfg.Storage.Backend {
	case config.BackendFile:
		fs, err := prefs.NewFileStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		store = fs
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		if err := database.RunMigrationsWithDB(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		store = repository.NewKVRepo(db)
		closeFn = func() { _ = db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if cfg.Storage.Seal {
		sealed, err := secrets.NewSealedStore(store, secrets.MasterKey())
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		store = sealed
	}
	return store, closeFn, nil
}
