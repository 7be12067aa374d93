// Package lexicon implements the lexicon record store using PostgreSQL.
// The table keeps the records' list order in the position column so a
// Load after Save returns exactly what was saved.
package lexicon

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/nene-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

const (
	table        = "lexicon_records"
	saveAttempts = 3
)

var columns = []string{"position", "soussou", "francais"}

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	sb   squirrel.StatementBuilderType
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{
		pool: pool,
		txm:  txm,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Load returns every record ordered by position.
func (r *Repo) Load(ctx context.Context) ([]domain.LexicalRecord, error) {
	query, args, err := r.sb.
		Select("soussou", "francais").
		From(table).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, table+" load")
	}
	defer rows.Close()

	records := make([]domain.LexicalRecord, 0)
	for rows.Next() {
		var rec domain.LexicalRecord
		if err := rows.Scan(&rec.Soussou, &rec.Francais); err != nil {
			return nil, postgres.MapError(err, table+" scan")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, table+" load")
	}

	return records, nil
}

// Save replaces the table contents with records in one transaction. A
// transaction that loses a deadlock or lock wait is retried a few times.
func (r *Repo) Save(ctx context.Context, records []domain.LexicalRecord) error {
	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		err = r.save(ctx, records)
		if err == nil || !postgres.Retryable(err) {
			return err
		}
	}
	return err
}

func (r *Repo) save(ctx context.Context, records []domain.LexicalRecord) error {
	del, args, err := r.sb.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		// The server and the import tool may write at the same time; the
		// second writer waits here instead of colliding on position.
		if _, err := q.Exec(ctx, "LOCK TABLE "+table+" IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return postgres.MapError(err, table+" lock")
		}
		if _, err := q.Exec(ctx, del, args...); err != nil {
			return postgres.MapError(err, table+" delete")
		}
		if len(records) == 0 {
			return nil
		}

		n, err := q.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return []any{i, records[i].Soussou, records[i].Francais}, nil
		}))
		if err != nil {
			return postgres.MapError(err, table+" copy "+strconv.Itoa(len(records))+" rows")
		}
		if int(n) != len(records) {
			return fmt.Errorf("%w: copied %d of %d lexicon records", domain.ErrPersistence, n, len(records))
		}
		return nil
	})
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := r.sb.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, table+" count")
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return postgres.MapError(err, table+" ping")
	}
	return nil
}
