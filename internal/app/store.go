package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nene-backend/internal/adapter/jsonfile"
	"github.com/heartmarshall/nene-backend/internal/adapter/postgres"
	pglexicon "github.com/heartmarshall/nene-backend/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/nene-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/nene-backend/internal/config"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

// RecordStore is the persisted lexicon as seen by the application.
type RecordStore interface {
	Load(ctx context.Context) ([]domain.LexicalRecord, error)
	Save(ctx context.Context, records []domain.LexicalRecord) error
	Ping(ctx context.Context) error
}

// OpenStore opens the record store selected by cfg.Storage.Driver. The
// returned close function releases connections and is never nil.
func OpenStore(ctx context.Context, log *slog.Logger, cfg *config.Config) (RecordStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageJSON:
		return jsonfile.NewStore(log, cfg.Storage.JSONPath), func() {}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, log, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := pglexicon.New(pool, postgres.NewTxManager(pool))
		return repo, pool.Close, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, log, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
