package lexicon_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/nene-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nene-backend/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/nene-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Tests in this package share one table and Save replaces it wholesale,
// so they do not run in parallel.

func newRepo(t *testing.T) (*lexicon.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	testhelper.TruncateLexicon(t, pool)
	return lexicon.New(pool, postgres.NewTxManager(pool)), pool
}

func TestRepo_LoadEmpty(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepo_SaveThenLoad_PreservesOrder(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	records := []domain.LexicalRecord{
		{Soussou: "Tana", Francais: "Bonjour"},
		{Soussou: "Minden?", Francais: "Où?"},
		{Soussou: "I mɛri?", Francais: "Comment ça va?"},
		{Soussou: "Munfera?", Francais: "Qu'est-ce que c'est?"},
	}
	require.NoError(t, repo.Save(ctx, records))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)
}

func TestRepo_SaveReplacesContents(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []domain.LexicalRecord{
		{Soussou: "a", Francais: "b"},
		{Soussou: "c", Francais: "d"},
	}))
	require.NoError(t, repo.Save(ctx, []domain.LexicalRecord{{Soussou: "e", Francais: "f"}}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LexicalRecord{{Soussou: "e", Francais: "f"}}, got)
}

func TestRepo_SaveEmptyClears(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []domain.LexicalRecord{{Soussou: "a", Francais: "b"}}))
	require.NoError(t, repo.Save(ctx, nil))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepo_SaveRejectedKeepsPreviousContents(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	previous := []domain.LexicalRecord{{Soussou: "Tana", Francais: "Bonjour"}}
	require.NoError(t, repo.Save(ctx, previous))

	// The empty francais violates the CHECK constraint; the whole save rolls back.
	err := repo.Save(ctx, []domain.LexicalRecord{{Soussou: "x", Francais: ""}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, previous, got)
}

func TestRepo_Ping(t *testing.T) {
	repo, _ := newRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestRepo_ConcurrentSavesSerialize(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	a := []domain.LexicalRecord{{Soussou: "Tana", Francais: "Bonjour"}, {Soussou: "Minden?", Francais: "Où?"}}
	b := []domain.LexicalRecord{{Soussou: "I mɛri?", Francais: "Comment ça va?"}}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, records := range [][]domain.LexicalRecord{a, b} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Save(ctx, records)
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	if len(got) == len(a) {
		assert.Equal(t, a, got)
	} else {
		assert.Equal(t, b, got)
	}
}
