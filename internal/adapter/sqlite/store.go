// Package sqlite implements the lexicon record store on an embedded SQLite
// database (pure-Go driver, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/heartmarshall/nene-backend/internal/domain"
	"github.com/heartmarshall/nene-backend/migrations"
)

const table = "lexicon_records"

// insertChunk bounds the rows per INSERT so a statement stays well under
// SQLite's host-parameter limit.
const insertChunk = 250

// Store persists lexicon records in SQLite.
type Store struct {
	db  *sql.DB
	log *slog.Logger
	sb  squirrel.StatementBuilderType
}

// Open opens (creating if needed) the database at path, applies migrations
// and returns a ready Store.
func Open(ctx context.Context, log *slog.Logger, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("make db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; SQLite serialises writes anyway.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	applied, err := migrations.Up(ctx, db, goose.DialectSQLite3)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log = log.With("adapter", "sqlite")
	log.InfoContext(ctx, "sqlite store ready", slog.String("path", path), slog.Int("migrations_applied", applied))

	return &Store{
		db:  db,
		log: log,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every record ordered by position.
func (s *Store) Load(ctx context.Context) ([]domain.LexicalRecord, error) {
	query, args, err := s.sb.
		Select("soussou", "francais").
		From(table).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: load lexicon: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]domain.LexicalRecord, 0)
	for rows.Next() {
		var rec domain.LexicalRecord
		if err := rows.Scan(&rec.Soussou, &rec.Francais); err != nil {
			return nil, fmt.Errorf("%w: scan lexicon row: %w", domain.ErrPersistence, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load lexicon: %w", domain.ErrPersistence, err)
	}
	return records, nil
}

// Save replaces the table contents with records in one transaction.
func (s *Store) Save(ctx context.Context, records []domain.LexicalRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		del, args, err := s.sb.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build delete query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, del, args...); err != nil {
			return fmt.Errorf("%w: clear lexicon: %w", domain.ErrPersistence, err)
		}

		for start := 0; start < len(records); start += insertChunk {
			end := min(start+insertChunk, len(records))

			ins := s.sb.Insert(table).Columns("position", "soussou", "francais")
			for i := start; i < end; i++ {
				ins = ins.Values(i, records[i].Soussou, records[i].Francais)
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("build insert query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: insert lexicon rows %d-%d: %w", domain.ErrPersistence, start, end-1, err)
			}
		}
		return nil
	})
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn within a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistence, err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.ErrorContext(ctx, "rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}
