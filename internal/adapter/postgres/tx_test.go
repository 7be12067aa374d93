package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/nene-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nene-backend/internal/adapter/postgres/testhelper"
)

const insertRecordSQL = `INSERT INTO lexicon_records (position, soussou, francais) VALUES ($1, $2, $3)`

// recordExists checks whether a lexicon row with the given position exists.
func recordExists(t *testing.T, pool *pgxpool.Pool, position int) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM lexicon_records WHERE position = $1)`,
		position,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("recordExists query: %v", err)
	}
	return exists
}

func setup(t *testing.T) (*pgxpool.Pool, *postgres.TxManager) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateLexicon(t, pool)
	return pool, postgres.NewTxManager(pool)
}

func TestRunInTx_Commit(t *testing.T) {
	pool, tm := setup(t)

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx, insertRecordSQL, 1, "Tana", "Bonjour")
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !recordExists(t, pool, 1) {
		t.Fatal("expected record to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool, tm := setup(t)

	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, execErr := q.Exec(ctx, insertRecordSQL, 2, "Minden?", "Où?"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if recordExists(t, pool, 2) {
		t.Fatal("expected record NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool, tm := setup(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if recordExists(t, pool, 3) {
			t.Fatal("expected record NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertRecordSQL, 3, "Munfera?", "Qu'est-ce que c'est?"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool, tm := setup(t)

	// Visible inside the transaction before commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertRecordSQL, 4, "I mɛri?", "Comment ça va?"); err != nil {
			return err
		}

		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM lexicon_records WHERE position = $1)`, 4).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected record to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !recordExists(t, pool, 4) {
		t.Fatal("expected record to exist after committed transaction")
	}
}

func TestRunInTx_NestedRollsBackToSavepoint(t *testing.T) {
	pool, tm := setup(t)

	inner := errors.New("inner failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if _, err := q.Exec(ctx, insertRecordSQL, 5, "Tana", "Bonjour"); err != nil {
			return err
		}

		nestedErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			q := postgres.QuerierFromCtx(ctx, pool)
			if _, err := q.Exec(ctx, insertRecordSQL, 6, "Minden?", "Où?"); err != nil {
				return err
			}
			return inner
		})
		if !errors.Is(nestedErr, inner) {
			t.Fatalf("expected inner error, got: %v", nestedErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !recordExists(t, pool, 5) {
		t.Fatal("outer insert should survive the nested rollback")
	}
	if recordExists(t, pool, 6) {
		t.Fatal("nested insert should be rolled back")
	}
}

func TestRunInTx_ReadOnlyOptions(t *testing.T) {
	pool, tm := setup(t)

	ro := tm.WithOptions(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	err := ro.RunInTx(context.Background(), func(ctx context.Context) error {
		_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx, insertRecordSQL, 7, "Tana", "Bonjour")
		return err
	})
	if err == nil {
		t.Fatal("expected write in a read-only transaction to fail")
	}
	if recordExists(t, pool, 7) {
		t.Fatal("expected no record after failed read-only transaction")
	}
}
