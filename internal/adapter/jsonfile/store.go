// Package jsonfile persists the lexicon as a single JSON document of
// {"soussou", "francais"} records.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Store reads and rewrites the whole record list on every call.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore creates a Store backed by the file at path.
func NewStore(log *slog.Logger, path string) *Store {
	return &Store{
		path: path,
		log:  log.With("adapter", "jsonfile"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the persisted records in file order. A missing file is
// reported as domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) ([]domain.LexicalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w: %w", s.path, domain.ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.LexicalRecord{}, nil
	}

	var records []domain.LexicalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if records == nil {
		records = []domain.LexicalRecord{}
	}
	return records, nil
}

// Save replaces the file with the given records. The write goes to a
// temporary file in the same directory which is then renamed over the target.
func (s *Store) Save(ctx context.Context, records []domain.LexicalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []domain.LexicalRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode lexicon: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("make dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.log.DebugContext(ctx, "lexicon saved", slog.Int("records", len(records)))
	return nil
}

// Ping reports whether the file's directory is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
