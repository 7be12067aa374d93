package lexicon

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

type recordStore interface {
	Load(ctx context.Context) ([]domain.LexicalRecord, error)
	Save(ctx context.Context, records []domain.LexicalRecord) error
}

// Service is the process-wide bidirectional Soussou/French dictionary.
// Reads are safe for concurrent use. Writes that reach the record store
// are serialized.
type Service struct {
	store recordStore
	log   *slog.Logger

	mu       sync.RWMutex
	sousToFr map[string]string
	frToSous map[string]string
	// frFold maps a folded French word to its Soussou translation.
	frFold map[string]string

	writeMu sync.Mutex
}

// NewService builds the dictionary from the record store, then applies the
// supplementary French->Soussou words on top. When the store cannot be read
// the fallback records are used instead and the error is logged.
func NewService(
	ctx context.Context,
	log *slog.Logger,
	store recordStore,
	supplement []domain.LexicalRecord,
	fallback []domain.LexicalRecord,
) *Service {
	s := &Service{
		store:    store,
		log:      log.With("service", "lexicon"),
		sousToFr: make(map[string]string),
		frToSous: make(map[string]string),
		frFold:   make(map[string]string),
	}

	records, err := store.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "load lexicon, using fallback dataset",
			slog.String("error", err.Error()),
			slog.Int("fallback_size", len(fallback)),
		)
		records = fallback
	}

	for _, r := range records {
		s.put(r)
	}
	for _, r := range supplement {
		s.put(r)
	}

	s.log.InfoContext(ctx, "lexicon loaded",
		slog.Int("records", len(records)),
		slog.Int("supplement", len(supplement)),
		slog.Int("soussou_keys", len(s.sousToFr)),
		slog.Int("french_keys", len(s.frToSous)),
	)

	return s
}

// Size returns the number of keys in each direction.
func (s *Service) Size() (soussouToFrench, frenchToSoussou int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sousToFr), len(s.frToSous)
}

// put writes both directions. Callers validate first.
func (s *Service) put(r domain.LexicalRecord) {
	s.mu.Lock()
	s.sousToFr[r.Soussou] = r.Francais
	s.frToSous[r.Francais] = r.Soussou
	s.frFold[domain.FoldWord(r.Francais)] = r.Soussou
	s.mu.Unlock()
}
