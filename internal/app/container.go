package app

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/entity"
	"portfolio-api/internal/mail"
	"portfolio-api/internal/store"
	"portfolio-api/internal/store/memory"
	storemongo "portfolio-api/internal/store/mongo"
	storepostgres "portfolio-api/internal/store/postgres"
	storesqlite "portfolio-api/internal/store/sqlite"
)

// Container holds the process-wide collaborators. The store handle is built
// once here and injected everywhere; nothing reaches for global state.
type Container struct {
	Config config.Config
	Store  store.Store
	Mailer mail.Mailer
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		Store:  st,
		Mailer: mail.NewSMTPMailer(cfg.SMTP),
	}, nil
}

// newStore selects the document store backend.
//
// Supported backends:
//
//	"postgres" - JSONB document tables (default)
//	"mongo"    - MongoDB
//	"sqlite"   - SQLite JSON1 at SQLITE_PATH
//	"memory"   - in-process, ephemeral
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "postgres", "":
		return storepostgres.Connect(ctx, cfg, entity.Collections())
	case "mongo":
		return storemongo.Connect(ctx, cfg)
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = "portfolio.db"
		}
		return storesqlite.Open(ctx, path, entity.Collections())
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: postgres, mongo, sqlite, memory)", cfg.Backend)
	}
}

func (c *Container) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
