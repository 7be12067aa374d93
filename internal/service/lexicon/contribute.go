package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nene-backend/internal/domain"
	"github.com/heartmarshall/nene-backend/pkg/ctxutil"
)

// Insert adds or overwrites the pair in memory only.
func (s *Service) Insert(soussou, french string) error {
	rec := domain.LexicalRecord{Soussou: soussou, Francais: french}
	if err := rec.Validate(); err != nil {
		return err
	}
	s.put(rec)
	return nil
}

// Contribute inserts the pair, merges it into the persisted record list
// keyed by its Soussou text and rewrites the store. The in-memory entry is
// kept when persisting fails; the failure wraps domain.ErrPersistence.
func (s *Service) Contribute(ctx context.Context, soussou, french string) error {
	rec := domain.LexicalRecord{Soussou: soussou, Francais: french}
	if err := rec.Validate(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.put(rec)

	records, err := s.loadForWrite(ctx)
	if err != nil {
		return fmt.Errorf("%w: load records: %w", domain.ErrPersistence, err)
	}

	records, updated := domain.MergeRecord(records, rec)
	if err := s.store.Save(ctx, records); err != nil {
		return fmt.Errorf("%w: save records: %w", domain.ErrPersistence, err)
	}

	s.log.InfoContext(ctx, "translation contributed", append(ctxutil.LogAttrs(ctx),
		slog.String("soussou", soussou),
		slog.Bool("updated", updated),
		slog.Int("records", len(records)),
	)...)

	return nil
}

// ImportResult summarizes a bulk merge.
type ImportResult struct {
	Added   int
	Updated int
	Skipped int
}

// Import merges many records with a single store rewrite. Invalid records
// are skipped and counted.
func (s *Service) Import(ctx context.Context, incoming []domain.LexicalRecord) (ImportResult, error) {
	var res ImportResult

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, err := s.loadForWrite(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: load records: %w", domain.ErrPersistence, err)
	}

	for _, rec := range incoming {
		if rec.Validate() != nil {
			res.Skipped++
			continue
		}
		var updated bool
		records, updated = domain.MergeRecord(records, rec)
		if updated {
			res.Updated++
		} else {
			res.Added++
		}
		s.put(rec)
	}

	if res.Added+res.Updated == 0 {
		return res, nil
	}
	if err := s.store.Save(ctx, records); err != nil {
		return res, fmt.Errorf("%w: save records: %w", domain.ErrPersistence, err)
	}

	s.log.InfoContext(ctx, "lexicon imported",
		slog.Int("added", res.Added),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
	)

	return res, nil
}

// loadForWrite reads the persisted records before a rewrite. A store that
// does not exist yet counts as empty, so the first write creates it.
func (s *Service) loadForWrite(ctx context.Context) ([]domain.LexicalRecord, error) {
	records, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return records, err
}
