package commands

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Joseda-hg/tasker/internal/config"
	"github.com/Joseda-hg/tasker/internal/model"
	"github.com/Joseda-hg/tasker/internal/store"
)

// App carries the loaded collection and its store across commands.
type App struct {
	Config config.Config
	Store  store.Store
	IDs    *model.IDAllocator
	Tasks  []model.Task
	Log    *logrus.Logger

	fileStore   *store.FileStore
	sqliteStore *store.SQLiteStore
}

// Setup resolves config (flags override the config file), opens the chosen
// backend, and loads the collection. A store that fails to parse degrades to
// an empty collection with a warning rather than aborting.
func (a *App) Setup(configPath, storagePath, dbPath, backend string) error {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if cfg.Backend == "" {
		cfg.Backend = config.BackendJSON
	}
	if storagePath != "" {
		cfg.StoragePath = storagePath
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = filepath.Join(filepath.Dir(cfgPath), "tasks.json")
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(cfgPath), "tasker.db")
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	a.Config = cfg
	a.IDs = model.NewIDAllocator()

	switch cfg.Backend {
	case config.BackendSQLite:
		if err := config.EnsureDir(cfg.DBPath); err != nil {
			return err
		}
		db, err := store.OpenSQLite(cfg.DBPath, a.IDs)
		if err != nil {
			return err
		}
		a.sqliteStore = db
		a.Store = db
	case config.BackendJSON:
		if err := config.EnsureDir(cfg.StoragePath); err != nil {
			return err
		}
		a.fileStore = store.NewFileStore(cfg.StoragePath, a.IDs)
		a.Store = a.fileStore
	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	tasks, err := a.Store.Load()
	if err != nil {
		a.Log.WithError(err).Warn("could not load existing tasks, starting empty")
	}
	a.Tasks = tasks
	return nil
}

func (a *App) Close() {
	if a.sqliteStore != nil {
		_ = a.sqliteStore.Close()
	}
}

func (a *App) SaveAll() error {
	return a.Store.Save(a.Tasks)
}

func (a *App) FindTask(id string) (*model.Task, error) {
	task, ok := model.FindTask(a.Tasks, id)
	if !ok {
		return nil, fmt.Errorf("task %s not found", id)
	}
	return task, nil
}
